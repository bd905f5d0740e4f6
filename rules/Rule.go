package rules

import (
	"fmt"
	"regexp"
	"strings"
)

// Kind is the closed set of edits a rule can make.
type Kind string

const (
	InsertBefore Kind = "insert_before"
	InsertAfter  Kind = "insert_after"
	Replace      Kind = "replace"
	Delete       Kind = "delete"
)

// Rule is one declarative patch: a predicate, an anchor and an edit.
//
// The predicate decides whether the document still needs the patch:
// when_missing lists markers that must all be absent, when_present lists
// markers that must all be present. A document failing the predicate is
// treated as already satisfying the rule's target.
//
// The anchor locates the edit. It is a regular expression unless literal
// is set. Insert kinds act on the first match only; replace and delete
// act on every match, and replace text may reference captures ($1).
type Rule struct {
	Name        string   `yaml:"name"`
	Kind        Kind     `yaml:"kind"`
	Anchor      string   `yaml:"anchor"`
	Literal     bool     `yaml:"literal,omitempty"`
	Text        string   `yaml:"text,omitempty"`
	WhenMissing []string `yaml:"when_missing,omitempty"`
	WhenPresent []string `yaml:"when_present,omitempty"`

	anchorRe *regexp.Regexp
}

func (r *Rule) Compile() error {
	if r.Name == "" {
		return fmt.Errorf("rule without a name")
	}
	switch r.Kind {
	case InsertBefore, InsertAfter, Replace, Delete:
	default:
		return fmt.Errorf("rule '%s': unknown kind '%s'", r.Name, r.Kind)
	}
	if r.Anchor == "" {
		return fmt.Errorf("rule '%s': empty anchor", r.Name)
	}
	anchor := r.Anchor
	if r.Literal {
		anchor = regexp.QuoteMeta(anchor)
	}
	re, err := regexp.Compile(anchor)
	if err != nil {
		return fmt.Errorf("rule '%s': bad anchor: %w", r.Name, err)
	}
	r.anchorRe = re
	return nil
}

// Wanted reports whether the document still needs this rule.
func (r *Rule) Wanted(content string) bool {
	for _, marker := range r.WhenMissing {
		if strings.Contains(content, marker) {
			return false
		}
	}
	for _, marker := range r.WhenPresent {
		if !strings.Contains(content, marker) {
			return false
		}
	}
	return true
}

// Apply performs the edit. It returns the new content, whether the edit
// happened, and whether the anchor was found at all.
func (r *Rule) Apply(content string) (string, bool, bool) {
	if r.anchorRe == nil {
		if err := r.Compile(); err != nil {
			return content, false, false
		}
	}
	switch r.Kind {
	case Replace:
		out := r.anchorRe.ReplaceAllString(content, r.Text)
		return out, out != content, r.anchorRe.MatchString(content)
	case Delete:
		out := r.anchorRe.ReplaceAllString(content, "")
		return out, out != content, r.anchorRe.MatchString(content)
	case InsertBefore, InsertAfter:
		loc := r.anchorRe.FindStringIndex(content)
		if loc == nil {
			return content, false, false
		}
		at := loc[0]
		if r.Kind == InsertAfter {
			at = loc[1]
		}
		out := content[:at] + r.Text + content[at:]
		return out, true, true
	}
	return content, false, false
}

// RuleSet is a named, ordered pack of rules. Rules run sequentially
// against the current content, so a later rule can act as the fallback
// for an earlier one whose anchor was missing.
type RuleSet struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description,omitempty"`
	Rules       []*Rule `yaml:"rules"`
}

func (rs *RuleSet) Compile() error {
	for _, rule := range rs.Rules {
		if err := rule.Compile(); err != nil {
			return fmt.Errorf("rule set '%s': %w", rs.Name, err)
		}
	}
	return nil
}
