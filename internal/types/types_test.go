package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatement_AddAndGet(t *testing.T) {
	var s Statement
	s.Add(LineItem{Label: "a", Current: 1, Previous: 2})
	s.Add(LineItem{Label: "b", Current: 3, Previous: 4})

	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Has("a"))
	assert.Equal(t, 3.0, s.Get("b").Current)
}

func TestStatement_DuplicateLabelLastWriteWins(t *testing.T) {
	var s Statement
	s.Add(LineItem{Label: "a", Current: 1})
	s.Add(LineItem{Label: "b", Current: 2})
	s.Add(LineItem{Label: "a", Current: 9})

	// The later value replaces the earlier one in place.
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 9.0, s.Get("a").Current)
	assert.Equal(t, "a", s.Items()[0].Label)
	assert.Equal(t, "b", s.Items()[1].Label)
}

func TestStatement_GetAbsentIsZeroValued(t *testing.T) {
	var s Statement
	item := s.Get("missing")
	assert.Equal(t, "missing", item.Label)
	assert.Zero(t, item.Current)
	assert.Zero(t, item.Previous)
	assert.False(t, s.Has("missing"))
}

func TestEquityStatement_DuplicateLabelLastWriteWins(t *testing.T) {
	var s EquityStatement
	s.Add(EquityLineItem{Label: "a", Total: 1})
	s.Add(EquityLineItem{Label: "a", Total: 7})

	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 7.0, s.Get("a").Total)
}

func TestNotes_AbsentNoteReadsEmpty(t *testing.T) {
	n := make(Notes)
	n[1] = "x"
	assert.Equal(t, "x", n[1])
	assert.Empty(t, n[5])
}
