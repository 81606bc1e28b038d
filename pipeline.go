package obbworld

import "golang.org/x/sync/errgroup"

// task splits [0, count) into one chunk per worker and runs fn on every index.
// fn must only write state owned by its index.
func task(workersCount int, count int, fn func(i int)) {
	if workersCount <= 1 || count <= 1 {
		for i := range count {
			fn(i)
		}
		return
	}

	var group errgroup.Group
	chunkSize := (count + workersCount - 1) / workersCount

	for start := 0; start < count; start += chunkSize {
		end := min(start+chunkSize, count)
		group.Go(func() error {
			for i := start; i < end; i++ {
				fn(i)
			}
			return nil
		})
	}
	_ = group.Wait()
}
