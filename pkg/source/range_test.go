package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRangeString(t *testing.T) {
	r := NewRange(2, 0, 3, 4)
	assert.Equal(t, "[Ln 2, Col 0 - Ln 3, Col 4]", r.String())
	assert.False(t, r.IsEmpty())
	assert.True(t, Range{}.IsEmpty())
	assert.Equal(t, NewRange(7, 0, 7, 0), LineStart(7))
}
