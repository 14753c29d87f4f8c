package storage

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEntry(t *testing.T) {
	e := NewEntry("llama-3.3-70b-versatile", "expert", "", 42, 1500*time.Millisecond)

	assert.NotEmpty(t, e.ID)
	assert.Equal(t, "llama-3.3-70b-versatile", e.Model)
	assert.Equal(t, "expert", e.Level)
	assert.Empty(t, e.Kind)
	assert.Equal(t, 42, e.CodeLength)
	assert.Equal(t, int64(1500), e.DurationMs)
	assert.False(t, e.CreatedAt.IsZero())
	assert.NotEqual(t, e.ID, NewEntry("m", "beginner", "", 1, 0).ID)
}

func TestMemoryJournal_RecentNewestFirst(t *testing.T) {
	j := NewMemoryJournal(10)
	for i := 0; i < 3; i++ {
		require.NoError(t, j.Record(Entry{ID: fmt.Sprint(i)}))
	}

	got, err := j.Recent(2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "2", got[0].ID)
	assert.Equal(t, "1", got[1].ID)

	all, err := j.Recent(0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestMemoryJournal_DropsOldest(t *testing.T) {
	j := NewMemoryJournal(2)
	for i := 0; i < 5; i++ {
		require.NoError(t, j.Record(Entry{ID: fmt.Sprint(i)}))
	}

	got, err := j.Recent(10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "4", got[0].ID)
	assert.Equal(t, "3", got[1].ID)
}

func TestMemoryJournal_DefaultSize(t *testing.T) {
	j := NewMemoryJournal(0)
	assert.Equal(t, defaultMemoryEntries, j.max)
	assert.NoError(t, j.Close())
}

func TestMemoryJournal_ConcurrentRecord(t *testing.T) {
	j := NewMemoryJournal(1000)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = j.Record(NewEntry("m", "beginner", "", 1, 0))
		}()
	}
	wg.Wait()

	got, err := j.Recent(0)
	require.NoError(t, err)
	assert.Len(t, got, 50)
}
