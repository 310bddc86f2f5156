package games

import (
	"fmt"
	"sort"

	"casino/models"
)

// MinesweeperResolver resolves a casino minesweeper round in one shot: the
// request declares how many tiles the player reveals before cashing out,
// draws place the mines and pick the revealed tiles, and the round wins if
// no revealed tile hides a mine.
type MinesweeperResolver struct{}

const (
	minGridSize     = 2
	maxGridSize     = 8
	defaultGridSize = 5
)

func (r *MinesweeperResolver) GameType() models.GameType {
	return models.GameTypeMinesweeper
}

func (r *MinesweeperResolver) ValidateParams(req *models.WagerRequest) error {
	gridSize := req.GridSize
	if gridSize == 0 {
		gridSize = defaultGridSize
	}
	if gridSize < minGridSize || gridSize > maxGridSize {
		return fmt.Errorf("%w: grid size must be %d-%d, got %d", models.ErrInvalidParameters, minGridSize, maxGridSize, req.GridSize)
	}
	cells := gridSize * gridSize
	if req.Mines < 1 || req.Mines >= cells {
		return fmt.Errorf("%w: mine count must be 1-%d for a %dx%d grid, got %d",
			models.ErrInvalidParameters, cells-1, gridSize, gridSize, req.Mines)
	}
	if req.Reveals < 1 || req.Reveals > cells-req.Mines {
		return fmt.Errorf("%w: reveal count must be 1-%d, got %d",
			models.ErrInvalidParameters, cells-req.Mines, req.Reveals)
	}
	return nil
}

func (r *MinesweeperResolver) Resolve(req *models.WagerRequest, src Source) models.Outcome {
	gridSize := req.GridSize
	if gridSize == 0 {
		gridSize = defaultGridSize
	}
	cells := gridSize * gridSize

	mines := sampleCells(src, cells, req.Mines)
	revealed := sampleCells(src, cells, req.Reveals)

	mineSet := make(map[int]bool, len(mines))
	for _, tile := range mines {
		mineSet[tile] = true
	}

	won := true
	hitMine := -1
	for _, tile := range revealed {
		if mineSet[tile] {
			won = false
			hitMine = tile
			break
		}
	}

	var multiplier float64
	if won {
		p := surviveProbability(cells, req.Mines, req.Reveals)
		multiplier = (1 / p) * (1 - MinesweeperEdge)
	}

	sort.Ints(mines)
	outcome := models.Outcome{
		Won:        won,
		Multiplier: multiplier,
		Detail: map[string]any{
			"grid_size": gridSize,
			"mines":     mines,
			"revealed":  revealed,
		},
	}
	if hitMine >= 0 {
		outcome.Detail["hit_mine"] = hitMine
	}
	return outcome
}

// sampleCells draws count distinct cell indices in [0, cells)
func sampleCells(src Source, cells, count int) []int {
	picked := make(map[int]bool, count)
	out := make([]int, 0, count)
	for len(out) < count {
		tile := src.Intn(cells)
		if picked[tile] {
			continue
		}
		picked[tile] = true
		out = append(out, tile)
	}
	return out
}

// surviveProbability is the chance that reveals uniformly chosen distinct
// tiles all miss the mines: the product of (safe-i)/(cells-i).
func surviveProbability(cells, mines, reveals int) float64 {
	p := 1.0
	safe := cells - mines
	for i := 0; i < reveals; i++ {
		p *= float64(safe-i) / float64(cells-i)
	}
	return p
}
