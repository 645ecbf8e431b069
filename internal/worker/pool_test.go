package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolExecuteKeepsOrder(t *testing.T) {
	pool := NewPool(4, func(_ context.Context, n int) (int, error) {
		return n * n, nil
	})

	inputs := []int{1, 2, 3, 4, 5, 6, 7, 8, 9}
	tasks := pool.Execute(context.Background(), inputs)

	require.Len(t, tasks, len(inputs))
	for i, task := range tasks {
		assert.NoError(t, task.Err)
		assert.Equal(t, inputs[i], task.Input)
		assert.Equal(t, inputs[i]*inputs[i], task.Result)
	}
}

func TestPoolIsolatesFailures(t *testing.T) {
	boom := errors.New("boom")
	pool := NewPool(1, func(_ context.Context, n int) (string, error) {
		switch n {
		case 2:
			return "", boom
		case 3:
			panic("bad input")
		}
		return "ok", nil
	})

	tasks := pool.Execute(context.Background(), []int{1, 2, 3, 4})

	assert.NoError(t, tasks[0].Err)
	assert.ErrorIs(t, tasks[1].Err, boom)
	require.Error(t, tasks[2].Err)
	assert.Contains(t, tasks[2].Err.Error(), "bad input")
	assert.NoError(t, tasks[3].Err)
	assert.Equal(t, "ok", tasks[3].Result)
}

func TestPoolCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pool := NewPool(2, func(_ context.Context, n int) (int, error) { return n, nil })
	tasks := pool.Execute(ctx, []int{1, 2, 3})

	require.Len(t, tasks, 3)
	for i, task := range tasks {
		assert.Equal(t, i+1, task.Input)
	}
}

func TestBatch(t *testing.T) {
	assert.Equal(t, [][]int{{1, 2}, {3, 4}, {5}}, Batch([]int{1, 2, 3, 4, 5}, 2))
	assert.Equal(t, [][]int{{1}, {2}}, Batch([]int{1, 2}, 0))
	assert.Nil(t, Batch([]int{}, 3))
}
