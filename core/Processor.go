package core

// DocumentCheck inspects one document and reports findings. Checks never
// mutate content.
type DocumentCheck interface {
	Name() string

	Supports(path string) bool

	Check(path string, site string, content string) ([]Finding, error)
}

// DocumentFixer applies one historical repair to a document. Apply
// mutates doc.Content; the caller decides whether to persist it.
type DocumentFixer interface {
	Name() string

	Supports(path string) bool

	Apply(doc *Document) (Outcome, error)
}

// Reporter renders everything a repository accumulated.
type Reporter interface {
	Report(repository FindingRepository) error
}
