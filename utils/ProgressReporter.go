package utils

import (
	"os"

	"github.com/schollz/progressbar/v3"
)

// ProgressReporter defines methods for reporting progress over a corpus.
type ProgressReporter interface {
	SetTotal(total int)
	Increment()
	Finish()
}

// BarProgressReporter renders a terminal progress bar.
type BarProgressReporter struct {
	description string
	bar         *progressbar.ProgressBar
}

func NewBarProgressReporter(total int, description string) *BarProgressReporter {
	p := &BarProgressReporter{description: description}
	p.SetTotal(total)
	return p
}

func (p *BarProgressReporter) SetTotal(total int) {
	p.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stdout),
		progressbar.OptionSetDescription(p.description),
		progressbar.OptionShowCount(),
		progressbar.OptionThrottle(100e6),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionClearOnFinish(),
	)
}

func (p *BarProgressReporter) Increment() {
	_ = p.bar.Add(1)
}

func (p *BarProgressReporter) Finish() {
	_ = p.bar.Finish()
}

// NullProgressReporter is used where a bar would pollute the output,
// e.g. in Lambda mode or under tests.
type NullProgressReporter struct{}

func (NullProgressReporter) SetTotal(int) {}
func (NullProgressReporter) Increment()   {}
func (NullProgressReporter) Finish()      {}
