package htmlcheck

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Tags whose balance we care about. Browsers recover from most markup
// damage, but an unclosed div or section shifts the whole layout below
// it, which is exactly the kind of breakage a regex patch can introduce.
var trackedTags = map[atom.Atom]bool{
	atom.Div:     true,
	atom.Section: true,
	atom.Nav:     true,
	atom.Header:  true,
	atom.Footer:  true,
	atom.Main:    true,
	atom.Script:  true,
	atom.Style:   true,
	atom.Form:    true,
	atom.Ul:      true,
	atom.Picture: true,
}

// Imbalance counts open minus close occurrences per tracked tag. A page
// is compared against itself before and after a transform; the transform
// is suspect when it changes any of these numbers.
type Imbalance map[atom.Atom]int

// Measure tokenizes the document and tallies tracked tag balance.
func Measure(content string) Imbalance {
	counts := Imbalance{}
	z := html.NewTokenizer(strings.NewReader(content))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return counts
		case html.StartTagToken:
			name, _ := z.TagName()
			if a := atom.Lookup(name); trackedTags[a] {
				counts[a]++
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if a := atom.Lookup(name); trackedTags[a] {
				counts[a]--
			}
		}
	}
}

// Compare returns an error when the after-measurement differs from the
// before-measurement.
func Compare(before, after Imbalance) error {
	var drifted []string
	for tag := range trackedTags {
		if before[tag] != after[tag] {
			drifted = append(drifted, fmt.Sprintf("%s (%+d -> %+d)", tag.String(), before[tag], after[tag]))
		}
	}
	if len(drifted) > 0 {
		return fmt.Errorf("transform changed tag balance: %s", strings.Join(drifted, ", "))
	}
	return nil
}
