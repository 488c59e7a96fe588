// Package migrate imports markdown articles and their images into the
// database and object storage. It backs the migrate-articles and
// list-images commands.
package migrate

import (
	"bytes"
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/pkordes/european-living/internal/domain"
	"github.com/pkordes/european-living/internal/service"
)

const (
	defaultAuthor  = "European Living"
	untitled       = "Untitled Article"
	excerptLength  = 200
	wordsPerMinute = 200
)

// frontmatter is the YAML header of a content file.
type frontmatter struct {
	Slug            string  `yaml:"slug"`
	Title           string  `yaml:"title"`
	Subtitle        string  `yaml:"subtitle"`
	Category        string  `yaml:"category"`
	DestinationName string  `yaml:"destination_name"`
	Author          string  `yaml:"author"`
	Tags            tagList `yaml:"tags"`
}

// tagList accepts either a YAML sequence or a comma-separated scalar.
type tagList []string

func (t *tagList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}
		*t = list
	case yaml.ScalarNode:
		*t = splitTags(node.Value)
	default:
		return fmt.Errorf("tags: expected a list or a comma-separated string")
	}
	return nil
}

var (
	frontmatterRE = regexp.MustCompile(`(?s)^---\n(.*?)\n---\n(.*)$`)
	h1RE          = regexp.MustCompile(`(?m)^#\s+(.+)$`)
	headingRE     = regexp.MustCompile(`(?m)^#+ .+$`)
	linkRE        = regexp.MustCompile(`\[([^\]]+)\]\([^)]*\)`)
	emphasisRE    = regexp.MustCompile("[*_~`]")
)

// splitFrontmatter separates the header from the markdown body. A file
// without a header is all body. Headers are YAML, but many were written as
// loose "key: value" lines with unquoted colons and '#' in them, so a header
// that is not valid YAML is read line by line instead.
func splitFrontmatter(raw []byte) (frontmatter, string) {
	text := string(bytes.ReplaceAll(raw, []byte("\r\n"), []byte("\n")))
	m := frontmatterRE.FindStringSubmatch(text)
	if m == nil {
		return frontmatter{}, text
	}
	lines := headerLines(m[1])

	var fm frontmatter
	if err := yaml.Unmarshal([]byte(m[1]), &fm); err != nil {
		fm = frontmatter{
			Slug:            lines["slug"],
			Title:           lines["title"],
			Subtitle:        lines["subtitle"],
			Category:        lines["category"],
			DestinationName: lines["destination_name"],
			Author:          lines["author"],
		}
	}
	// YAML reads "tags: food, #beer" as "food," plus a comment.
	if v := lines["tags"]; v != "" && !strings.HasPrefix(v, "[") {
		fm.Tags = splitTags(v)
	}
	return fm, m[2]
}

// headerLines reads every "key: value" line of a header, splitting on the
// first colon and dropping surrounding quotes. Lines without a value are
// skipped.
func headerLines(header string) map[string]string {
	out := make(map[string]string)
	for _, line := range strings.Split(header, "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok || strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t") {
			continue
		}
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)
		value = strings.TrimSuffix(strings.TrimPrefix(value, `"`), `"`)
		value = strings.TrimSuffix(strings.TrimPrefix(value, "'"), "'")
		if key != "" && value != "" {
			out[key] = value
		}
	}
	return out
}

func splitTags(s string) []string {
	var out []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// ParseArticle turns one markdown file into an article ready to insert.
// Image references found in images are rewritten to their stored URLs
// before the excerpt and reading time are derived.
func ParseArticle(filename string, raw []byte, images *strings.Replacer) domain.Article {
	fm, body := splitFrontmatter(raw)

	a := domain.Article{
		Slug:      fm.Slug,
		Title:     fm.Title,
		Subtitle:  fm.Subtitle,
		Category:  fm.Category,
		Author:    fm.Author,
		Tags:      fm.Tags,
		Published: true,
	}
	if a.Slug == "" {
		a.Slug = service.SlugFromFilename(filename)
	}
	if a.Title == "" {
		a.Title = extractTitle(body)
	}
	if a.Category == "" {
		a.Category = CategoryFor(filename)
	}
	if a.Author == "" {
		a.Author = defaultAuthor
	}
	if len(a.Tags) == 0 {
		a.Tags = []string{a.Category}
	}

	if images != nil {
		body = images.Replace(body)
	}
	a.Content = body
	a.Excerpt = Excerpt(body)
	a.ReadingTimeMinutes = ReadingTime(body)

	switch {
	case fm.DestinationName != "":
		a.DestinationName = fm.DestinationName
	case a.Category == "Destinations":
		a.DestinationName = destinationName(a.Title)
	}
	return a
}

func extractTitle(body string) string {
	if m := h1RE.FindStringSubmatch(body); m != nil {
		return strings.TrimSpace(m[1])
	}
	return untitled
}

// destinationName strips guide wording from a destination article title:
// "Munich Guide" and "Guide to Munich" both become "Munich".
func destinationName(title string) string {
	name := strings.Replace(title, " Guide", "", 1)
	name = strings.Replace(name, "Guide to ", "", 1)
	return strings.TrimSpace(name)
}

// Excerpt returns the first paragraph of body with headings, link targets
// and emphasis markers removed, cut to 200 characters plus "...".
func Excerpt(body string) string {
	plain := headingRE.ReplaceAllString(body, "")
	plain = linkRE.ReplaceAllString(plain, "$1")
	plain = emphasisRE.ReplaceAllString(plain, "")
	plain = strings.TrimSpace(plain)

	first, _, _ := strings.Cut(plain, "\n\n")
	if utf8.RuneCountInString(first) > excerptLength {
		return string([]rune(first)[:excerptLength]) + "..."
	}
	return first
}

// ReadingTime estimates minutes at 200 words per minute, rounded up, and is
// never less than one.
func ReadingTime(body string) int {
	words := len(strings.Fields(body))
	return max(1, int(math.Ceil(float64(words)/wordsPerMinute)))
}

var destinationCities = []string{
	"aachen", "amsterdam", "barcelona", "berlin", "budapest", "cologne", "frankfurt",
	"lisbon", "london", "munich", "paris", "prague", "rome", "stuttgart", "vienna",
}

var categoryKeywords = []struct {
	category string
	keywords []string
}{
	{"Destinations", destinationCities},
	{"Practical Guides", []string{"banking", "budgeting", "registering", "staying-connected", "driving", "transportation"}},
	{"Cultural Tips", []string{"etiquette", "cultural", "phrases"}},
	{"Travel Tips", []string{"accommodations", "hidden-gems", "day-trips"}},
}

// CategoryFor picks an article category from keywords in its file name.
// The first matching group wins; anything else is "General".
func CategoryFor(filename string) string {
	lower := strings.ToLower(filename)
	for _, group := range categoryKeywords {
		for _, kw := range group.keywords {
			if strings.Contains(lower, kw) {
				return group.category
			}
		}
	}
	return "General"
}
