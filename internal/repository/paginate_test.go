package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlan_Defaults(t *testing.T) {
	p := NewPaginator(10, 16)

	w := p.Plan(0, 0)

	assert.Equal(t, 1, w.Page)
	assert.Equal(t, 10, w.Limit)
	assert.Equal(t, 0, w.Skip)
}

func TestPlan_NegativeInput(t *testing.T) {
	p := NewPaginator(10, 16)

	w := p.Plan(-3, -1)

	assert.Equal(t, 1, w.Page)
	assert.Equal(t, 10, w.Limit)
}

func TestPlan_ClampsToHardCap(t *testing.T) {
	p := NewPaginator(10, 16)

	w := p.Plan(1, 500)

	assert.Equal(t, 16, w.Limit)
}

func TestPlan_SkipComputation(t *testing.T) {
	p := NewPaginator(10, 16)

	w := p.Plan(3, 5)

	assert.Equal(t, 3, w.Page)
	assert.Equal(t, 5, w.Limit)
	assert.Equal(t, 10, w.Skip)
}

func TestNewPaginator_SanityFallbacks(t *testing.T) {
	p := NewPaginator(0, 0)

	assert.Equal(t, 10, p.Default)
	assert.Equal(t, 16, p.Max)

	// default can never exceed the cap
	p = NewPaginator(50, 20)
	assert.Equal(t, 20, p.Default)
}

func TestPlan_DistinctCapsPerInstance(t *testing.T) {
	small := NewPaginator(5, 8)
	large := NewPaginator(20, 100)

	assert.Equal(t, 8, small.Plan(1, 50).Limit)
	assert.Equal(t, 50, large.Plan(1, 50).Limit)
}
