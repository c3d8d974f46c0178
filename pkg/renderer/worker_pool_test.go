package renderer

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/rayito/pkg/core"
)

func TestWorkerPool_ProcessesEveryJobOnce(t *testing.T) {
	width, height := 7, 20
	mock := &MockIntegrator{returnColor: core.NewVec3(0, 0, 1)}
	tr := NewTileRenderer(testWorld(), testCamera(width, height), mock, width, height, 1, 1)

	tiles := PlanTiles(width, height, 20)
	pool := NewWorkerPool(tr, len(tiles), 4, zerolog.Nop())
	assert.Equal(t, 4, pool.NumWorkers())

	jobs := make([]*TileJob, len(tiles))
	for i, tile := range tiles {
		jobs[i] = NewTileJob(i, tile)
		pool.SubmitTask(jobs[i])
		assert.Equal(t, TileQueued, jobs[i].State())
	}
	pool.Close()
	pool.Start()

	seen := make(map[int]int)
	for result := range pool.Results() {
		require.NoError(t, result.Err)
		seen[result.Job.ID]++
		assert.Equal(t, width, result.Samples)
	}

	require.Len(t, seen, len(jobs))
	for id, count := range seen {
		assert.Equal(t, 1, count, "job %d", id)
	}
	for _, job := range jobs {
		assert.Equal(t, TileDone, job.State())
	}
	assert.Equal(t, int64(width*height), mock.callCount.Load())
}

func TestWorkerPool_PanicBecomesError(t *testing.T) {
	tr := NewTileRenderer(testWorld(), testCamera(4, 4), PanicIntegrator{}, 4, 4, 1, 1)
	tiles := PlanTiles(4, 4, 2)

	pool := NewWorkerPool(tr, len(tiles), 2, zerolog.Nop())
	jobs := []*TileJob{NewTileJob(0, tiles[0]), NewTileJob(1, tiles[1])}
	for _, job := range jobs {
		pool.SubmitTask(job)
	}
	pool.Close()
	pool.Start()

	errs := 0
	for result := range pool.Results() {
		if result.Err != nil {
			errs++
			assert.Equal(t, TileInProgress, result.Job.State())
		}
	}
	// The bottom band looks below the horizon
	assert.GreaterOrEqual(t, errs, 1)
}

func TestWorkerPool_DefaultWorkerCount(t *testing.T) {
	assert.GreaterOrEqual(t, DefaultWorkerCount(), 1)

	pool := NewWorkerPool(nil, 0, 0, zerolog.Nop())
	assert.Equal(t, DefaultWorkerCount(), pool.NumWorkers())
}
