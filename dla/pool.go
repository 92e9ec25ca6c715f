// SPDX-License-Identifier: MIT

package dla

import "sync"

// parallelFor runs fn(i) for i in [0,n) on at most workers goroutines and
// returns the error of the lowest failing index, so results do not depend on
// scheduling. Each fn writes only to its own output slot.
func parallelFor(n, workers int, fn func(i int) error) error {
	if n == 0 {
		return nil
	}
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}
	errs := make([]error, n)
	if workers == 1 {
		for i := 0; i < n; i++ {
			errs[i] = fn(i)
		}
	} else {
		jobs := make(chan int, workers*2)
		var wg sync.WaitGroup
		wg.Add(workers)
		for w := 0; w < workers; w++ {
			go func() {
				defer wg.Done()
				for i := range jobs {
					errs[i] = fn(i)
				}
			}()
		}
		for i := 0; i < n; i++ {
			jobs <- i
		}
		close(jobs)
		wg.Wait()
	}
	for _, err := range errs {
		if err != nil {
			return err
		}
	}

	return nil
}
