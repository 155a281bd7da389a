package solver

import "sync"

// The parallel execution layer: independent inner loops of the solvers fan
// out over a fixed number of goroutines, each owning a contiguous slice of
// output indices so no two workers ever write the same slot. forEachChunk
// only returns once every worker is done, which is the barrier between DP
// layers.

// chunkMin is a partial reduction result over one contiguous index range
type chunkMin struct {
	index int
	value float64
}

// forEachChunk splits [0, n) into at most `workers` contiguous ranges and
// runs task on each concurrently. Blocks until all ranges are processed.
func forEachChunk(workers, n int, task func(lo, hi int)) {
	if n <= 0 {
		return
	}
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		task(0, n)
		return
	}

	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for lo := 0; lo < n; lo += chunkSize {
		hi := lo + chunkSize
		if hi > n {
			hi = n
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			task(lo, hi)
		}(lo, hi)
	}
	wg.Wait()
}

// minReduce finds the index of the smallest value in values[0:n] using a
// partitioned scan. Each chunk reports its first minimal index; chunks are
// combined in ascending order with a strict comparison, so the overall
// winner is the first minimal index in scan order regardless of goroutine
// scheduling. Falls back to a sequential scan if the partitions came back
// inconclusive (all chunks empty or non-finite values).
func minReduce(workers int, values []float64) int {
	n := len(values)
	if n == 0 {
		return -1
	}
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		return sequentialMin(values)
	}

	chunkSize := (n + workers - 1) / workers
	numChunks := (n + chunkSize - 1) / chunkSize
	partials := make([]chunkMin, numChunks)

	var wg sync.WaitGroup
	for c := 0; c < numChunks; c++ {
		lo := c * chunkSize
		hi := lo + chunkSize
		if hi > n {
			hi = n
		}
		wg.Add(1)
		go func(c, lo, hi int) {
			defer wg.Done()
			best := chunkMin{index: -1}
			for j := lo; j < hi; j++ {
				if best.index < 0 || values[j] < best.value {
					best = chunkMin{index: j, value: values[j]}
				}
			}
			partials[c] = best
		}(c, lo, hi)
	}
	wg.Wait()

	best := chunkMin{index: -1}
	for _, partial := range partials {
		if partial.index < 0 {
			continue
		}
		if best.index < 0 || partial.value < best.value {
			best = partial
		}
	}

	if best.index < 0 {
		return sequentialMin(values)
	}
	return best.index
}

func sequentialMin(values []float64) int {
	best := -1
	for j, v := range values {
		if best < 0 || v < values[best] {
			best = j
		}
	}
	return best
}
