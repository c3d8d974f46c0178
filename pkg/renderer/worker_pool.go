package renderer

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"

	"github.com/df07/rayito/pkg/core"
)

// TileResult contains the result from rendering a tile
type TileResult struct {
	Job      *TileJob
	WorkerID int
	Samples  int
	Err      error
}

// WorkerPool renders queued tile jobs in parallel. Every job is submitted up front
// and the queue closed before workers drain it; a closed, empty queue stops them.
type WorkerPool struct {
	taskQueue   chan *TileJob
	resultQueue chan TileResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
	logger      zerolog.Logger
}

// Worker handles individual tile rendering tasks
type Worker struct {
	ID          int
	renderer    *TileRenderer
	sampler     *core.RandomSampler
	taskQueue   <-chan *TileJob
	resultQueue chan<- TileResult
	logger      zerolog.Logger
}

// DefaultWorkerCount returns the number of logical cores
func DefaultWorkerCount() int {
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		return n
	}
	return runtime.NumCPU()
}

// NewWorkerPool creates a pool with room for capacity jobs. numWorkers <= 0 uses
// one worker per logical core.
func NewWorkerPool(tileRenderer *TileRenderer, capacity, numWorkers int, logger zerolog.Logger) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = DefaultWorkerCount()
	}
	capacity = max(capacity, 0)

	wp := &WorkerPool{
		taskQueue:   make(chan *TileJob, capacity),
		resultQueue: make(chan TileResult, capacity),
		numWorkers:  numWorkers,
		logger:      logger,
	}

	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &Worker{
			ID:          i,
			renderer:    tileRenderer,
			sampler:     core.NewRandomSampler(int64(i)),
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
			logger:      logger.With().Int("worker", i).Logger(),
		})
	}

	return wp
}

// SubmitTask queues a job. Must be called before Close.
func (wp *WorkerPool) SubmitTask(job *TileJob) {
	job.setState(TileQueued)
	wp.taskQueue <- job
}

// Close marks the queue complete
func (wp *WorkerPool) Close() {
	close(wp.taskQueue)
}

// Start begins all workers. The result channel is closed once every worker has exited.
func (wp *WorkerPool) Start() {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(&wp.wg)
	}
	go func() {
		wp.wg.Wait()
		close(wp.resultQueue)
	}()
}

// Results returns the channel of completed tiles
func (wp *WorkerPool) Results() <-chan TileResult {
	return wp.resultQueue
}

// NumWorkers returns the number of workers in the pool
func (wp *WorkerPool) NumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (w *Worker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	for job := range w.taskQueue {
		w.resultQueue <- w.render(job)
	}
}

// render renders one job, converting a panic into an error result
func (w *Worker) render(job *TileJob) (result TileResult) {
	result = TileResult{Job: job, WorkerID: w.ID}
	defer func() {
		if r := recover(); r != nil {
			w.logger.Error().Int("tile", job.ID).Interface("panic", r).Msg("tile render panicked")
			result.Err = fmt.Errorf("worker %d panicked rendering tile %d: %v", w.ID, job.ID, r)
		}
	}()

	job.setState(TileInProgress)
	result.Samples = w.renderer.RenderTile(job.Tile, w.sampler)
	job.setState(TileDone)

	w.logger.Debug().Int("tile", job.ID).Int("start_row", job.Tile.StartRow).Int("rows", job.Tile.Image.Height).Msg("tile done")
	return result
}
