package htmlcheck

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"golang.org/x/net/html/atom"
)

func TestMeasureCountsTrackedTagBalance(t *testing.T) {
	m := Measure(`<div><section><div></div></section></div><nav></nav>`)
	assert.Equal(t, 0, m[atom.Div])
	assert.Equal(t, 0, m[atom.Section])
	assert.Equal(t, 0, m[atom.Nav])
}

func TestMeasureDetectsUnclosedDiv(t *testing.T) {
	m := Measure(`<div><div></div>`)
	assert.Equal(t, 1, m[atom.Div])
}

func TestMeasureIgnoresUntrackedTags(t *testing.T) {
	m := Measure(`<span><b>text`)
	assert.Empty(t, m)
}

func TestCompareAcceptsEqualMeasurements(t *testing.T) {
	page := `<div><form><ul></ul></form></div>`
	assert.Nil(t, Compare(Measure(page), Measure(page)))
}

func TestCompareAcceptsBalancedAdditions(t *testing.T) {
	before := Measure(`<div><img src="a.png"></div>`)
	after := Measure(`<div><picture><img src="a.jpg"></picture></div>`)
	assert.Nil(t, Compare(before, after))
}

func TestCompareRejectsDrift(t *testing.T) {
	before := Measure(`<div></div>`)
	after := Measure(`<div></div><div>`)
	err := Compare(before, after)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "div")
}
