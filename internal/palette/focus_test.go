package palette

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFocusRing(t *testing.T) {
	r := NewFocusRing(FocusQuery, FocusResults, FocusClose)
	assert.Equal(t, FocusQuery, r.Current())
	assert.Equal(t, FocusResults, r.Next())
	assert.Equal(t, FocusClose, r.Next())
	assert.Equal(t, FocusQuery, r.Next())
	assert.Equal(t, FocusClose, r.Prev())

	r.Reset()
	assert.Equal(t, FocusQuery, r.Current())
}

func TestFocusRing_Empty(t *testing.T) {
	r := NewFocusRing()
	assert.Equal(t, FocusQuery, r.Next())
	assert.Equal(t, FocusQuery, r.Prev())
}

func TestFocus_String(t *testing.T) {
	assert.Equal(t, "query", FocusQuery.String())
	assert.Equal(t, "results", FocusResults.String())
	assert.Equal(t, "close", FocusClose.String())
}
