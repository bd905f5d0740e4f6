package rules

import (
	"github.com/akmcyber/sitepatch/core"
)

// Engine runs one rule set over one document at a time.
type Engine struct {
	Set *RuleSet
}

func NewEngine(set *RuleSet) *Engine {
	return &Engine{Set: set}
}

// Apply walks the rules in order against the current content and folds
// the per-rule results into a single outcome:
//
//   - any rule edited the document      -> fixed
//   - every rule's predicate held       -> already-ok
//   - otherwise (wanted, anchor absent) -> skipped
//
// A rule without predicate markers is always wanted, so for such rules
// skipped doubles as "pattern absent": a page whose defect was already
// removed reports skipped on later runs, with zero byte change.
func (e *Engine) Apply(doc *core.Document) (core.Outcome, error) {
	applied := false
	wanted := false

	for _, rule := range e.Set.Rules {
		if !rule.Wanted(doc.Content) {
			continue
		}
		wanted = true
		out, changed, _ := rule.Apply(doc.Content)
		if changed {
			doc.Content = out
			applied = true
		}
	}

	switch {
	case applied:
		return core.OutcomeFixed, nil
	case wanted:
		return core.OutcomeSkipped, nil
	default:
		return core.OutcomeAlreadyOK, nil
	}
}
