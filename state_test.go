package control4amp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrackerUnknownUntilRecorded(t *testing.T) {
	tr := newTracker()

	_, known := tr.powerOf(1)
	assert.False(t, known)
	_, known = tr.volumeOf(1)
	assert.False(t, known)
	_, known = tr.sourceOf(1)
	assert.False(t, known)
}

func TestTrackerLastWriteWins(t *testing.T) {
	tr := newTracker()

	tr.recordVolume(2, 10)
	tr.recordVolume(2, 80)
	level, known := tr.volumeOf(2)
	assert.True(t, known)
	assert.Equal(t, 80, level)

	tr.recordPower(2, true)
	tr.recordPower(2, false)
	on, known := tr.powerOf(2)
	assert.True(t, known)
	assert.False(t, on)
}

func TestTrackerOutputsAreIndependent(t *testing.T) {
	tr := newTracker()

	tr.recordSource(1, 3)
	source, known := tr.sourceOf(1)
	assert.True(t, known)
	assert.Equal(t, 3, source)

	_, known = tr.sourceOf(2)
	assert.False(t, known)
}
