package activity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendPrepends(t *testing.T) {
	l := NewLog()
	l.Info("first")
	l.Success("second", "https://example.org/tx/0xabc")
	l.Error("third")

	entries := l.View()
	require.Len(t, entries, 3)
	assert.Equal(t, "third", entries[0].Message)
	assert.Equal(t, "second", entries[1].Message)
	assert.Equal(t, "first", entries[2].Message)

	assert.Equal(t, KindError, entries[0].Kind)
	assert.Equal(t, KindSuccess, entries[1].Kind)
	assert.Equal(t, "https://example.org/tx/0xabc", entries[1].Link)
	assert.Equal(t, KindInfo, entries[2].Kind)
}

func TestAppendFillsTimestamp(t *testing.T) {
	l := NewLog()
	before := time.Now()
	l.Info("stamped")

	entries := l.View()
	require.Len(t, entries, 1)
	assert.False(t, entries[0].At.Before(before))
}

func TestAppendKeepsExplicitTimestamp(t *testing.T) {
	l := NewLog()
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	l.Append(Entry{Kind: KindInfo, Message: "fixed", At: at})

	assert.Equal(t, at, l.View()[0].At)
}

func TestViewReturnsSnapshot(t *testing.T) {
	l := NewLog()
	l.Info("only")

	view := l.View()
	view[0].Message = "mutated"

	assert.Equal(t, "only", l.View()[0].Message)
}

func TestViewSnapshotUnaffectedByLaterAppends(t *testing.T) {
	l := NewLog()
	l.Info("a")
	view := l.View()
	l.Info("b")

	assert.Len(t, view, 1)
	assert.Equal(t, 2, l.Len())
}

func TestLenEmpty(t *testing.T) {
	assert.Equal(t, 0, NewLog().Len())
}
