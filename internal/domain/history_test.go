package domain

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStroke(id string, page int, points ...Point) Stroke {
	if len(points) == 0 {
		points = []Point{{X: 0.1, Y: 0.1}}
	}
	return Stroke{ID: StrokeID(id), Kind: StrokeKindPencil, Color: DefaultColor, Page: page, Points: points}
}

func TestHistoryInitialStateIsSingleEmptySnapshot(t *testing.T) {
	t.Parallel()

	h := NewHistory()
	assert.Equal(t, 1, h.Len())
	assert.False(t, h.CanUndo())
	assert.False(t, h.CanRedo())

	_, ok := h.Undo()
	assert.False(t, ok)
	assert.Equal(t, 0, h.Current().Len())
}

func TestHistoryUndoRedoInverse(t *testing.T) {
	t.Parallel()

	h := NewHistory()
	set := NewPageAnnotationSet()
	const commits = 5
	for i := 0; i < commits; i++ {
		set = set.With(testStroke(fmt.Sprintf("s%d", i), 1+i%2, Point{X: float64(i) / 10, Y: 0.5}))
		h.Push(set)
	}
	final := set.Clone()

	for i := 0; i < commits; i++ {
		_, ok := h.Undo()
		require.True(t, ok)
	}
	assert.Equal(t, 0, h.Current().Len())

	var redone PageAnnotationSet
	for i := 0; i < commits; i++ {
		var ok bool
		redone, ok = h.Redo()
		require.True(t, ok)
	}

	if diff := cmp.Diff(final, redone); diff != "" {
		t.Fatalf("redo did not reproduce final store (-want +got):\n%s", diff)
	}
	assert.False(t, h.CanRedo())
}

func TestHistoryPushDiscardsFutureBranch(t *testing.T) {
	t.Parallel()

	h := NewHistory()
	set := NewPageAnnotationSet()
	for _, id := range []string{"a", "b", "c"} {
		set = set.With(testStroke(id, 1))
		h.Push(set)
	}

	_, ok := h.Undo()
	require.True(t, ok)
	afterUndo, ok := h.Undo()
	require.True(t, ok)

	h.Push(afterUndo.With(testStroke("d", 1)))

	_, ok = h.Redo()
	assert.False(t, ok)
	assert.Equal(t, 3, h.Len())

	ids := []StrokeID{}
	for _, stroke := range h.Current().Strokes(1) {
		ids = append(ids, stroke.ID)
	}
	assert.Equal(t, []StrokeID{"a", "d"}, ids)
}

func TestHistorySnapshotsAreImmutable(t *testing.T) {
	t.Parallel()

	h := NewHistory()
	set := NewPageAnnotationSet().With(testStroke("a", 1, Point{X: 0.2, Y: 0.2}))
	h.Push(set)

	set[1][0].Points[0] = Point{X: 0.9, Y: 0.9}
	current := h.Current()
	current[1][0].Points[0] = Point{X: 0.7, Y: 0.7}

	assert.Equal(t, Point{X: 0.2, Y: 0.2}, h.Current().Strokes(1)[0].Points[0])
}
