package core

// Finding is a single audit observation about one document: a missing
// meta tag, an unbalanced script block, an image without alt text.
type Finding struct {
	Name       string                 `json:"name,omitempty"`
	Type       string                 `json:"type,omitempty"`
	Category   string                 `json:"category,omitempty"`
	Properties map[string]interface{} `json:"properties,omitempty"`
	Path       string                 `json:"path,omitempty"`
	Site       string                 `json:"site,omitempty"`
}

type FindingSet struct {
	Findings []Finding `json:"findingSet"`
}

type FindingRepository interface {
	Store(findings []Finding) error
	Clear() error
	NewIterator() FindingIterator
	Close() error
}

type FindingIterator interface {
	HasNext() bool
	Next() (FindingSet, error)
	Reset() error
}
