// Package device models the data-parallel side of a run: a persistent worker
// pool that executes kernels over independent lanes, and buffers that are only
// reachable from the host through explicit Upload/Download copies.
package device

import (
	"runtime"
	"sync"
)

// DefaultParallelThreshold is the minimum lane count that is split across
// workers. Below this, a launch runs inline on the calling goroutine.
const DefaultParallelThreshold = 64

// Kernel processes lanes [i0, i1). Lanes must not depend on each other.
type Kernel func(i0, i1 int)

// workChunk is a range of lanes handed to one worker.
type workChunk struct {
	start, end int
	kernel     Kernel
}

// Device executes kernels on a pool of worker goroutines.
// Every Launch is a full barrier: it returns after all lanes are done.
type Device struct {
	numWorkers int
	threshold  int

	// Worker pool channels
	workChan chan workChunk // sends work to workers
	doneChan chan struct{}  // workers signal completion
	stopChan chan struct{}  // signals workers to exit
	wg       sync.WaitGroup // tracks active workers
	running  bool

	// launches from different goroutines are serialized
	mu sync.Mutex
}

// New creates a device with the given worker count (0 = GOMAXPROCS) and
// parallel threshold (0 = DefaultParallelThreshold). Workers start lazily on
// the first parallel launch.
func New(workers, threshold int) *Device {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if threshold <= 0 {
		threshold = DefaultParallelThreshold
	}
	return &Device{
		numWorkers: workers,
		threshold:  threshold,
	}
}

// Workers returns the number of worker goroutines.
func (d *Device) Workers() int {
	return d.numWorkers
}

// startWorkers launches persistent worker goroutines.
func (d *Device) startWorkers() {
	if d.running {
		return
	}

	d.workChan = make(chan workChunk, d.numWorkers)
	d.doneChan = make(chan struct{}, d.numWorkers)
	d.stopChan = make(chan struct{})
	d.running = true

	for i := 0; i < d.numWorkers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
}

// Close signals all workers to exit and waits for them.
func (d *Device) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.running {
		return
	}

	close(d.stopChan)
	d.wg.Wait()
	close(d.workChan)
	close(d.doneChan)
	d.running = false
}

// worker runs in a goroutine, processing chunks until stopped.
func (d *Device) worker() {
	defer d.wg.Done()

	for {
		select {
		case <-d.stopChan:
			return
		case chunk, ok := <-d.workChan:
			if !ok {
				return
			}
			chunk.kernel(chunk.start, chunk.end)
			d.doneChan <- struct{}{}
		}
	}
}

// Launch runs k over lanes [0, n) and blocks until every lane has finished.
func (d *Device) Launch(n int, k Kernel) {
	if n <= 0 {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	// Single-threaded for small lane counts
	if n < d.threshold || d.numWorkers == 1 {
		k(0, n)
		return
	}

	if !d.running {
		d.startWorkers()
	}

	chunkSize := (n + d.numWorkers - 1) / d.numWorkers

	// Dispatch chunks to workers
	chunksDispatched := 0
	for w := 0; w < d.numWorkers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > n {
			end = n
		}
		if start >= end {
			continue
		}

		d.workChan <- workChunk{start: start, end: end, kernel: k}
		chunksDispatched++
	}

	// Wait for all chunks to complete
	for i := 0; i < chunksDispatched; i++ {
		<-d.doneChan
	}
}
