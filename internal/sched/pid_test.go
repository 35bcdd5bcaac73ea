package sched

import (
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPIDCounter(t *testing.T) {
	c := NewPIDCounter(0)
	assert.Equal(t, PID(1), c.Peek())
	assert.Equal(t, PID(1), c.Next())
	assert.Equal(t, PID(2), c.Next())
	assert.Equal(t, PID(3), c.Peek())

	c.Reset(42)
	assert.Equal(t, PID(42), c.Next())

	c.Reset(-3)
	assert.Equal(t, PID(1), c.Next())
}

func TestPIDCounter_Concurrent(t *testing.T) {
	const workers, perWorker = 8, 250
	f := NewFactory(DefaultConfig())

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		seen []PID
	)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			local := make([]PID, 0, perWorker)
			for i := 0; i < perWorker; i++ {
				local = append(local, f.New(i, i, i).PID())
			}
			mu.Lock()
			seen = append(seen, local...)
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, seen, workers*perWorker)
	sort.Slice(seen, func(i, j int) bool { return seen[i] < seen[j] })
	for i, pid := range seen {
		assert.Equal(t, PID(i+1), pid)
	}
}
