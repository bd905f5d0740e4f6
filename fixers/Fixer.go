package fixers

import (
	"github.com/akmcyber/sitepatch/checks"
	"github.com/akmcyber/sitepatch/core"
	"github.com/akmcyber/sitepatch/rules"
)

// RuleFixer adapts a declarative rule pack to the DocumentFixer
// interface. Most historical repairs are expressible this way; the ones
// that are not live in their own files in this package.
type RuleFixer struct {
	engine *rules.Engine
}

func NewRuleFixer(set *rules.RuleSet) *RuleFixer {
	return &RuleFixer{engine: rules.NewEngine(set)}
}

func (f *RuleFixer) Name() string {
	return f.engine.Set.Name
}

func (f *RuleFixer) Supports(path string) bool {
	return checks.IsHTMLFile(path)
}

func (f *RuleFixer) Apply(doc *core.Document) (core.Outcome, error) {
	return f.engine.Apply(doc)
}
