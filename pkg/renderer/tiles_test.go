package renderer

import (
	"testing"

	"github.com/df07/rayito/pkg/raster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanTiles(t *testing.T) {
	tests := []struct {
		name         string
		width        int
		height       int
		jobs         int
		expectedRows []int
	}{
		{"even split", 10, 8, 4, []int{2, 2, 2, 2}},
		{"remainder goes to last band", 10, 10, 3, []int{3, 3, 4}},
		{"single job", 5, 7, 1, []int{7}},
		{"jobs clamped to height", 5, 3, 32, []int{1, 1, 1}},
		{"zero jobs treated as one", 4, 4, 0, []int{4}},
		{"negative jobs treated as one", 4, 4, -2, []int{4}},
		{"default jobs on 200 rows", 400, 200, 32, append(repeat(6, 31), 14)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tiles := PlanTiles(tt.width, tt.height, tt.jobs)
			require.Len(t, tiles, len(tt.expectedRows))

			nextRow := 0
			for i, tile := range tiles {
				assert.Equal(t, nextRow, tile.StartRow, "tile %d start", i)
				assert.Equal(t, 0, tile.StartCol)
				assert.Equal(t, tt.width, tile.Image.Width)
				assert.Equal(t, tt.expectedRows[i], tile.Image.Height, "tile %d rows", i)
				nextRow = tile.EndRow()
			}
			assert.Equal(t, tt.height, nextRow)

			_, err := raster.FromTiles(tt.width, tt.height, tiles)
			assert.NoError(t, err)
		})
	}
}

func TestPlanTiles_ZeroArea(t *testing.T) {
	assert.Empty(t, PlanTiles(0, 10, 4))
	assert.Empty(t, PlanTiles(10, 0, 4))
}

func TestTileJobLifecycle(t *testing.T) {
	job := NewTileJob(3, raster.NewTile(0, 0, 1, 1))
	assert.Equal(t, TilePlanned, job.State())

	job.setState(TileQueued)
	assert.Equal(t, TileQueued, job.State())

	assert.Equal(t, "planned", TilePlanned.String())
	assert.Equal(t, "queued", TileQueued.String())
	assert.Equal(t, "in_progress", TileInProgress.String())
	assert.Equal(t, "done", TileDone.String())
	assert.Equal(t, "state(9)", TileState(9).String())
}

func repeat(v, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = v
	}
	return out
}
