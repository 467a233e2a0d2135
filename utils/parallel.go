package utils

import (
	"fmt"
	"runtime"

	goutils "go.viam.com/utils"
	"golang.org/x/sync/errgroup"
)

// ParallelFactor controls the max level of parallelization. This might be useful
// to set in tests where too much parallelism actually slows tests down in
// aggregate.
var ParallelFactor = runtime.GOMAXPROCS(0)

func init() {
	if ParallelFactor <= 0 {
		ParallelFactor = 1
	}
	quarterProcs := float64(ParallelFactor) * .25
	if quarterProcs > 8 {
		ParallelFactor = int(quarterProcs)
	}
}

// IndexedWorkFunc runs for a single work item of a parallel loop.
type IndexedWorkFunc func(workNum int) error

// RunIndexedInParallel calls work for every index in [0, totalSize) using at most ParallelFactor
// goroutines at once. The first error is returned; a panic inside work is converted to an error.
func RunIndexedInParallel(totalSize int, work IndexedWorkFunc) error {
	var group errgroup.Group
	group.SetLimit(ParallelFactor)
	for workNum := 0; workNum < totalSize; workNum++ {
		group.Go(func() error {
			errCh := make(chan error, 1)
			goutils.PanicCapturingGoWithCallback(func() {
				errCh <- work(workNum)
			}, func(thePanic interface{}) {
				errCh <- fmt.Errorf("got panic running work item %d in parallel: %v", workNum, thePanic)
			})
			return <-errCh
		})
	}
	return group.Wait()
}
