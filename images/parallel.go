package images

import (
	"runtime"
	"sync"
)

// minRowsPerWorker keeps tiny partitions from costing more in goroutine
// start-up than they save.
const minRowsPerWorker = 16

// Parallel splits [0, n) into contiguous, disjoint partitions and runs fn on
// each one in its own goroutine, returning when all have finished. Small
// inputs run inline on the caller's goroutine.
//
// Arguments:
// - n: The number of rows (or columns) to partition.
// - fn: Called once per partition with its half-open range.
//
// @example
//
//	Parallel(img.Height, func(start, end int) {
//	    for y := start; y < end; y++ {
//	        // Process row y
//	    }
//	})
func Parallel(n int, fn func(start, end int)) {
	if n <= 0 {
		return
	}

	workers := runtime.NumCPU()
	if limit := n / minRowsPerWorker; limit < workers {
		workers = limit
	}
	if workers <= 1 {
		fn(0, n)
		return
	}

	part := n / workers
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		start := i * part
		end := start + part
		// Last partition takes the remainder.
		if i == workers-1 {
			end = n
		}
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}
