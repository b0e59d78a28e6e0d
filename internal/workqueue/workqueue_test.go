package workqueue

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRun_CoversEveryIndexExactlyOnce(t *testing.T) {
	const n = 37
	var mu sync.Mutex
	seen := make([]int, n)

	Run(n, func(start, end int) {
		mu.Lock()
		defer mu.Unlock()
		for i := start; i < end; i++ {
			seen[i]++
		}
	})

	for i, count := range seen {
		assert.Equal(t, 1, count, "index %d visited %d times", i, count)
	}
}

func TestRun_EmptyRange(t *testing.T) {
	called := false
	Run(0, func(start, end int) { called = true })
	assert.False(t, called)
}

func TestRunContext_NoErrorWithoutCancellation(t *testing.T) {
	err := RunContext(context.Background(), 16, func(start, end int) {})
	assert.NoError(t, err)
}
