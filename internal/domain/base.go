package domain

import "context"

// KnownBases are the installations a business can serve.
var KnownBases = []Base{
	{ID: "stuttgart", Name: "USAG Stuttgart"},
	{ID: "ramstein", Name: "Ramstein Air Base"},
	{ID: "kaiserslautern", Name: "KMC Area"},
	{ID: "wiesbaden", Name: "USAG Wiesbaden"},
	{ID: "grafenwoehr", Name: "USAG Bavaria"},
	{ID: "spangdahlem", Name: "Spangdahlem AB"},
}

// IsKnownBase reports whether id is one of KnownBases.
func IsKnownBase(id string) bool {
	for _, b := range KnownBases {
		if b.ID == id {
			return true
		}
	}
	return false
}

type selectedBaseKey struct{}

// WithSelectedBase returns a copy of ctx carrying the caller's selected base.
func WithSelectedBase(ctx context.Context, baseID string) context.Context {
	return context.WithValue(ctx, selectedBaseKey{}, baseID)
}

// SelectedBase returns the base stored by WithSelectedBase, or "".
func SelectedBase(ctx context.Context) string {
	v, _ := ctx.Value(selectedBaseKey{}).(string)
	return v
}
