package alloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_HeapNeverFails(t *testing.T) {
	var h Heap
	for i := 0; i < 100; i++ {
		assert.NoError(t, h.Alloc(KindNode, 16))
	}
}

func Test_TrackerCountsBlocksAndBytes(t *testing.T) {
	tr := NewTracker(1)

	assert.NoError(t, tr.Alloc(KindNode, 16))
	assert.NoError(t, tr.Alloc(KindValue, 4))
	assert.NoError(t, tr.Alloc(KindValue, 6))

	assert.Equal(t, 3, tr.Blocks())
	assert.Equal(t, 2, tr.Blocks(KindValue))
	assert.Equal(t, 10, tr.Bytes(KindValue))
	assert.Equal(t, 26, tr.Bytes())
	assert.Error(t, tr.Check())

	tr.Free(KindValue, 4)
	tr.Free(KindValue, 6)
	tr.Free(KindNode, 16)

	assert.Equal(t, 0, tr.Blocks())
	assert.NoError(t, tr.Check())
	assert.Equal(t, 3, tr.Allocations())
}

func Test_TrackerDetectsDoubleFree(t *testing.T) {
	tr := NewTracker(1)
	assert.NoError(t, tr.Alloc(KindNode, 16))

	tr.Free(KindNode, 16)
	tr.Free(KindNode, 16)

	assert.Equal(t, 1, tr.DoubleFrees())
	assert.Error(t, tr.Check())
}

func Test_TrackerFailAfter(t *testing.T) {
	tr := NewTracker(1)
	tr.FailAfter = 2

	assert.NoError(t, tr.Alloc(KindNode, 1))
	assert.NoError(t, tr.Alloc(KindNode, 1))

	err := tr.Alloc(KindNode, 1)
	assert.Error(t, err)
	assert.True(t, ErrExhausted.Has(err))
	assert.Equal(t, 2, tr.Blocks())
	assert.Equal(t, 1, tr.Failures())
}

func Test_TrackerFailPercentBounds(t *testing.T) {
	always := NewTracker(3)
	always.FailPercent = 100
	never := NewTracker(3)

	for i := 0; i < 50; i++ {
		assert.Error(t, always.Alloc(KindValue, 1))
		assert.NoError(t, never.Alloc(KindValue, 1))
	}
	assert.Equal(t, 0, always.Blocks())
	assert.Equal(t, 50, never.Blocks())
}

func Test_ZeroValueTrackerIsUsable(t *testing.T) {
	var tr Tracker
	assert.NoError(t, tr.Alloc(KindQueue, 8))
	tr.Free(KindQueue, 8)
	assert.NoError(t, tr.Check())
}

func Test_KindString(t *testing.T) {
	assert.Equal(t, "node", KindNode.String())
	assert.Equal(t, "kind(9)", Kind(9).String())
}
