package faceobscuring

import "golang.org/x/sync/errgroup"

// parallelRows splits [0, height) into bands and runs fn on each band,
// using at most workers goroutines.
func parallelRows(height, workers int, fn func(y0, y1 int)) {
	if height <= 0 {
		return
	}
	workers = max(1, min(workers, height))
	band := (height + workers - 1) / workers

	var g errgroup.Group
	g.SetLimit(workers)
	for y0 := 0; y0 < height; y0 += band {
		y0, y1 := y0, min(y0+band, height)
		g.Go(func() error {
			fn(y0, y1)
			return nil
		})
	}
	_ = g.Wait()
}
