package sequencer

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestRollingContext_FragmentShape(t *testing.T) {
	c := newRollingContext(500, 200)
	assert.Equal(t, "", c.Snapshot())

	c.Append("Intro", "Hello world")
	assert.Equal(t, "\nIntro: Hello world...", c.Snapshot())

	c.Append("Body", strings.Repeat("x", 250))
	assert.Equal(t, "\nIntro: Hello world...\nBody: "+strings.Repeat("x", 200)+"...", c.Snapshot())
}

func TestRollingContext_TruncatesToMaxRunes(t *testing.T) {
	c := newRollingContext(500, 200)
	for i := 0; i < 10; i++ {
		c.Append("Section", strings.Repeat("内容", 150))
	}
	snap := c.Snapshot()
	assert.Equal(t, 500, utf8.RuneCountInString(snap))
	assert.True(t, utf8.ValidString(snap))
	assert.True(t, strings.HasPrefix(snap, "\nSection: "))
}
