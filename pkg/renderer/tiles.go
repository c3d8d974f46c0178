package renderer

import (
	"fmt"
	"sync/atomic"

	"github.com/df07/rayito/pkg/raster"
)

// TileState tracks a tile through the scheduler
type TileState int32

const (
	TilePlanned TileState = iota
	TileQueued
	TileInProgress
	TileDone
)

func (s TileState) String() string {
	switch s {
	case TilePlanned:
		return "planned"
	case TileQueued:
		return "queued"
	case TileInProgress:
		return "in_progress"
	case TileDone:
		return "done"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// TileJob is a unit of scheduled work. Once queued only the worker that
// received it writes to its tile.
type TileJob struct {
	ID    int
	Tile  *raster.Tile
	state atomic.Int32
}

// NewTileJob wraps a planned tile
func NewTileJob(id int, tile *raster.Tile) *TileJob {
	return &TileJob{ID: id, Tile: tile}
}

// State returns the current lifecycle state
func (j *TileJob) State() TileState {
	return TileState(j.state.Load())
}

func (j *TileJob) setState(s TileState) {
	j.state.Store(int32(s))
}

// PlanTiles splits a width x height image into jobs full-width horizontal bands of
// height/jobs rows each. The last band absorbs the remainder. jobs is clamped to
// [1, height] so no band is empty; a zero-area image has no tiles.
func PlanTiles(width, height, jobs int) []*raster.Tile {
	if width <= 0 || height <= 0 {
		return nil
	}
	jobs = max(1, min(jobs, height))

	rowsPerTile := height / jobs
	tiles := make([]*raster.Tile, 0, jobs)
	for i := 0; i < jobs; i++ {
		startRow := i * rowsPerTile
		rows := rowsPerTile
		if i == jobs-1 {
			rows = height - startRow
		}
		tiles = append(tiles, raster.NewTile(startRow, 0, width, rows))
	}
	return tiles
}
