package domain

// TagName is the flattened form of a tag attached to a day trip.
// The store keeps tags in a normalized join (day_trip_tags → tags); callers
// only ever see the name.
type TagName struct {
	Name string `json:"name"`
}

// TagNames converts a slice of names into the flattened tag form.
// A nil or empty input yields an empty, non-nil slice.
func TagNames(names []string) []TagName {
	out := make([]TagName, 0, len(names))
	for _, n := range names {
		if n == "" {
			continue
		}
		out = append(out, TagName{Name: n})
	}
	return out
}
