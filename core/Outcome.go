package core

// Outcome is what happened to one document during a fix run.
type Outcome int

const (
	// OutcomeAlreadyOK means the document already satisfied the target
	// predicate and was left alone.
	OutcomeAlreadyOK Outcome = iota
	// OutcomeFixed means at least one transform changed the document.
	OutcomeFixed
	// OutcomeSkipped means the predicate failed but no anchor was found,
	// so the document was left untouched.
	OutcomeSkipped
	// OutcomeError means the document could not be processed.
	OutcomeError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAlreadyOK:
		return "already-ok"
	case OutcomeFixed:
		return "fixed"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeError:
		return "error"
	}
	return "unknown"
}

// Tally accumulates outcomes across a run.
type Tally struct {
	Total     int
	Fixed     int
	Skipped   int
	AlreadyOK int
	Errors    int
}

func (t *Tally) Add(o Outcome) {
	t.Total++
	switch o {
	case OutcomeFixed:
		t.Fixed++
	case OutcomeSkipped:
		t.Skipped++
	case OutcomeAlreadyOK:
		t.AlreadyOK++
	case OutcomeError:
		t.Errors++
	}
}
