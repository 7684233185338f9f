package shared

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewID(t *testing.T) {
	id := NewID()
	assert.False(t, id.IsEmpty())
	_, err := uuid.Parse(id.String())
	assert.NoError(t, err)
	assert.True(t, ID("").IsEmpty())
}

func TestSequence_Next(t *testing.T) {
	seq := NewSequence("E")
	assert.Equal(t, "E", seq.Prefix())
	assert.Equal(t, ID("E0"), seq.Next())
	assert.Equal(t, ID("E1"), seq.Next())
	assert.Equal(t, int64(2), seq.Issued())

	seq.Reset()
	assert.Equal(t, ID("E0"), seq.Next())
}

func TestSequence_Independent(t *testing.T) {
	a := NewSequence("EMP")
	b := NewSequence("EMP")
	assert.Equal(t, ID("EMP0"), a.Next())
	assert.Equal(t, ID("EMP1"), a.Next())
	assert.Equal(t, ID("EMP0"), b.Next())
}

func TestSequence_ConcurrentNextIsUnique(t *testing.T) {
	seq := NewSequence("E")
	const workers, perWorker = 8, 100

	var (
		mu   sync.Mutex
		seen = make(map[ID]struct{}, workers*perWorker)
		wg   sync.WaitGroup
	)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				id := seq.Next()
				mu.Lock()
				seen[id] = struct{}{}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Len(t, seen, workers*perWorker)
	assert.Equal(t, int64(workers*perWorker), seq.Issued())
}
