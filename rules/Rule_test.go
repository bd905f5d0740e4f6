package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInsertAfterActsOnFirstMatchOnly(t *testing.T) {
	rule := &Rule{
		Name:   "insert-after",
		Kind:   InsertAfter,
		Anchor: `<li>`,
		Text:   "X",
	}
	assert.Nil(t, rule.Compile())

	out, changed, found := rule.Apply("<li>a</li><li>b</li>")
	assert.True(t, changed)
	assert.True(t, found)
	assert.Equal(t, "<li>Xa</li><li>b</li>", out)
}

func TestInsertBeforePlacesTextAtAnchorStart(t *testing.T) {
	rule := &Rule{
		Name:    "insert-before",
		Kind:    InsertBefore,
		Anchor:  "</head>",
		Literal: true,
		Text:    "<link rel=\"icon\" href=\"/favicon.ico\">\n",
	}
	assert.Nil(t, rule.Compile())

	out, changed, found := rule.Apply("<head>\n</head>")
	assert.True(t, changed)
	assert.True(t, found)
	assert.Equal(t, "<head>\n<link rel=\"icon\" href=\"/favicon.ico\">\n</head>", out)
}

func TestReplaceActsOnEveryMatchAndExpandsCaptures(t *testing.T) {
	rule := &Rule{
		Name:   "replace",
		Kind:   Replace,
		Anchor: `width="(\d+)"`,
		Text:   `data-width="$1"`,
	}
	assert.Nil(t, rule.Compile())

	out, changed, found := rule.Apply(`<img width="32"><img width="64">`)
	assert.True(t, changed)
	assert.True(t, found)
	assert.Equal(t, `<img data-width="32"><img data-width="64">`, out)
}

func TestDeleteRemovesEveryMatch(t *testing.T) {
	rule := &Rule{
		Name:   "delete",
		Kind:   Delete,
		Anchor: `\s*<!-- draft -->`,
	}
	assert.Nil(t, rule.Compile())

	out, changed, _ := rule.Apply("a <!-- draft -->b <!-- draft -->c")
	assert.True(t, changed)
	assert.Equal(t, "abc", out)
}

func TestLiteralAnchorIsNotTreatedAsRegexp(t *testing.T) {
	rule := &Rule{
		Name:    "literal",
		Kind:    Replace,
		Anchor:  "a.c",
		Literal: true,
		Text:    "X",
	}
	assert.Nil(t, rule.Compile())

	out, changed, _ := rule.Apply("abc a.c")
	assert.True(t, changed)
	assert.Equal(t, "abc X", out)
}

func TestWantedRequiresAllWhenMissingMarkersAbsent(t *testing.T) {
	rule := &Rule{
		Name:        "predicate",
		Kind:        InsertBefore,
		Anchor:      "</head>",
		Literal:     true,
		Text:        "x",
		WhenMissing: []string{"favicon.ico", `rel="icon"`},
	}

	assert.True(t, rule.Wanted("<head></head>"))
	assert.False(t, rule.Wanted(`<link rel="icon" href="favicon.ico">`))
	assert.False(t, rule.Wanted("favicon.ico only"))
}

func TestWantedRequiresAllWhenPresentMarkers(t *testing.T) {
	rule := &Rule{
		Name:        "predicate",
		Kind:        Replace,
		Anchor:      "x",
		Text:        "y",
		WhenPresent: []string{`data-netlify="true"`},
	}

	assert.True(t, rule.Wanted(`<form data-netlify="true">`))
	assert.False(t, rule.Wanted("<form>"))
}

func TestApplyReportsAnchorNotFound(t *testing.T) {
	rule := &Rule{
		Name:   "no-anchor",
		Kind:   InsertAfter,
		Anchor: "never-there",
		Text:   "x",
	}
	assert.Nil(t, rule.Compile())

	out, changed, found := rule.Apply("some content")
	assert.False(t, changed)
	assert.False(t, found)
	assert.Equal(t, "some content", out)
}

func TestCompileRejectsUnknownKind(t *testing.T) {
	rule := &Rule{Name: "bad", Kind: "swap", Anchor: "x"}
	assert.Error(t, rule.Compile())
}

func TestCompileRejectsBadAnchorPattern(t *testing.T) {
	rule := &Rule{Name: "bad", Kind: Replace, Anchor: "(["}
	assert.Error(t, rule.Compile())
}
