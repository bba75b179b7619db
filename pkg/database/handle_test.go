package database

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandle_SharesOnePool(t *testing.T) {
	h := NewHandle(WithDataSource(":memory:"))
	defer h.Close()

	ctx := context.Background()
	var wg sync.WaitGroup
	pools := make([]any, 8)
	for i := range pools {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			db, err := h.Get(ctx)
			assert.NoError(t, err)
			pools[i] = db
		}(i)
	}
	wg.Wait()

	for _, p := range pools[1:] {
		assert.Same(t, pools[0], p)
	}
}

func TestHandle_Reset(t *testing.T) {
	h := NewHandle(WithDataSource(":memory:"))
	ctx := context.Background()

	first, err := h.Get(ctx)
	require.NoError(t, err)
	_, err = first.Exec(`CREATE TABLE marker (v INTEGER)`)
	require.NoError(t, err)

	require.NoError(t, h.Reset())
	assert.Error(t, first.Ping(), "old pool is closed")

	second, err := h.Get(ctx)
	require.NoError(t, err)
	assert.NotSame(t, first, second)

	_, err = second.Exec(`SELECT v FROM marker`)
	assert.Error(t, err, "fresh in-memory store has no tables")

	require.NoError(t, h.Close())
	assert.NoError(t, h.Reset())
}

func TestHandle_FailedConnectIsRetried(t *testing.T) {
	h := NewHandle(WithDriver("oracle"))

	_, err := h.Get(context.Background())
	assert.Error(t, err)
	_, err = h.Get(context.Background())
	assert.Error(t, err)
}
