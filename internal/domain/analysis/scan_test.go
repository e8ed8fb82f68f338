package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineLabelOffsets(t *testing.T) {
	s := "Pattern Details:\nsee Pattern Details: below\n  Pattern Details:\n- Pattern Details:\nx- Pattern Details:"
	got := lineLabelOffsets(s, LabelPatternDetails)

	assert.Len(t, labelOffsets(s, LabelPatternDetails), 5)
	assert.Equal(t, []int{16, 62, 81}, got)
	assert.Empty(t, lineLabelOffsets("no label here", LabelPatternDetails))
}
