// Package canon provides canonical title normalization for cited works.
//
// There is exactly one normalization strategy: slug the input (lowercase,
// non-alphanumeric runs collapsed to a single dash), then map known aliases
// to their canonical book slug. The same function is applied to citation
// titles at compile time and to event title tags at match time, so the two
// sides can never drift apart.
package canon

import (
	_ "embed"
	"fmt"
	"strings"

	goslug "github.com/gosimple/slug"
	"gopkg.in/yaml.v3"
)

//go:embed books.yaml
var booksYAML []byte

// Book is one entry in the embedded canon table.
type Book struct {
	Name    string   `yaml:"name"`
	Aliases []string `yaml:"aliases"`
}

var (
	books    []Book
	aliasMap map[string]string // normalized alias -> canonical slug
	orderMap map[string]int    // canonical slug -> canon position
)

func init() {
	var doc struct {
		Books []Book `yaml:"books"`
	}
	if err := yaml.Unmarshal(booksYAML, &doc); err != nil {
		panic(fmt.Sprintf("canon: embedded books.yaml is invalid: %v", err))
	}
	books = doc.Books

	aliasMap = make(map[string]string)
	orderMap = make(map[string]int, len(books))
	for i, b := range books {
		canonical := Slug(b.Name)
		orderMap[canonical] = i
		aliasMap[canonical] = canonical
		for _, a := range b.Aliases {
			aliasMap[Slug(a)] = canonical
		}
	}
}

// Slug lowercases and collapses non-alphanumeric runs to a single dash.
// A trailing abbreviation dot is dropped ("Gen." -> "gen").
func Slug(s string) string {
	s = strings.TrimSuffix(strings.TrimSpace(s), ".")
	slugged := goslug.Make(s)
	if slugged == "" {
		slugged = strings.ToLower(strings.ReplaceAll(s, " ", "-"))
	}
	return slugged
}

// NormalizeTitle returns the canonical tag value for a cited title.
// Known aliases resolve to their canon entry; unknown titles are slugged
// as-is so works outside the canon table still match consistently.
func NormalizeTitle(title string) string {
	s := Slug(title)
	if canonical, ok := aliasMap[s]; ok {
		return canonical
	}
	return s
}

// IsKnown reports whether the title resolves to a canon table entry.
func IsKnown(title string) bool {
	_, ok := aliasMap[Slug(title)]
	return ok
}

// Order returns the canon position of a title, and whether it is in the
// table at all. Positions are 0-based in canon traversal order.
func Order(title string) (int, bool) {
	pos, ok := orderMap[NormalizeTitle(title)]
	return pos, ok
}

// Name returns the display name for a canonical title, or the input
// unchanged when it is not in the table.
func Name(title string) string {
	canonical := NormalizeTitle(title)
	if pos, ok := orderMap[canonical]; ok {
		return books[pos].Name
	}
	return title
}
