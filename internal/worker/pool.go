package worker

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
)

// Task is the outcome of processing one input.
type Task[T any, R any] struct {
	Input  T
	Result R
	Err    error
}

// ProcessFunc processes a single input.
type ProcessFunc[T any, R any] func(ctx context.Context, input T) (R, error)

// Pool runs inputs through a fixed number of workers. A failing or
// panicking task is recorded in its own Task and never stops the others.
type Pool[T any, R any] struct {
	workers int
	process ProcessFunc[T, R]
}

// NewPool creates a pool; fewer than one worker means one.
func NewPool[T any, R any](workers int, fn ProcessFunc[T, R]) *Pool[T, R] {
	if workers < 1 {
		workers = 1
	}
	return &Pool[T, R]{
		workers: workers,
		process: fn,
	}
}

// Execute processes every input and returns one Task per input, in input
// order. Inputs not started before ctx is cancelled get ctx.Err().
func (p *Pool[T, R]) Execute(ctx context.Context, inputs []T) []Task[T, R] {
	results := make([]Task[T, R], len(inputs))
	started := make([]bool, len(inputs))
	inputCh := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < p.workers; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for idx := range inputCh {
				results[idx] = p.run(ctx, inputs[idx])
				if err := results[idx].Err; err != nil {
					log.Error().Err(err).Int("worker", workerID).Int("index", idx).Msg("Task failed")
				}
			}
		}(w)
	}

feed:
	for i := range inputs {
		select {
		case <-ctx.Done():
			break feed
		case inputCh <- i:
			started[i] = true
		}
	}
	close(inputCh)
	wg.Wait()

	for i := range inputs {
		if !started[i] {
			results[i] = Task[T, R]{Input: inputs[i], Err: ctx.Err()}
		}
	}
	return results
}

func (p *Pool[T, R]) run(ctx context.Context, input T) (task Task[T, R]) {
	task.Input = input
	defer func() {
		if r := recover(); r != nil {
			task.Err = fmt.Errorf("task panicked: %v", r)
		}
	}()
	task.Result, task.Err = p.process(ctx, input)
	return task
}

// Batch splits items into consecutive slices of at most batchSize.
func Batch[T any](items []T, batchSize int) [][]T {
	if batchSize <= 0 {
		batchSize = 1
	}
	var batches [][]T
	for i := 0; i < len(items); i += batchSize {
		end := min(i+batchSize, len(items))
		batches = append(batches, items[i:end])
	}
	return batches
}
