package engine

import (
	"math/rand"
	"testing"
)

// scriptedRand replays fixed values for Intn and Float64.
type scriptedRand struct {
	ints   []int
	floats []float64
}

func (r *scriptedRand) Intn(n int) int {
	v := r.ints[0] % n
	r.ints = r.ints[1:]
	return v
}

func (r *scriptedRand) Float64() float64 {
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func TestSpawnPlacesOnChosenEmptyCell(t *testing.T) {
	board := Board{
		{2, 2, 2, 2},
		{2, 0, 2, 2},
		{2, 2, 2, 0},
		{2, 2, 2, 2},
	}
	rng := &scriptedRand{ints: []int{1}, floats: []float64{0.5}}

	res := NewSpawner(rng, DefaultSpawn4Probability).Spawn(&board)

	if !res.Placed || res.BoardFull() {
		t.Fatal("spawn should succeed with empty cells available")
	}
	if res.Row != 2 || res.Col != 3 || res.Value != 2 {
		t.Errorf("spawn = %+v, want (2,3)=2", res)
	}
	if board[2][3] != 2 {
		t.Error("spawned value not written to the board")
	}
}

func TestSpawnFour(t *testing.T) {
	var board Board
	rng := &scriptedRand{ints: []int{0}, floats: []float64{0.05}}

	res := NewSpawner(rng, DefaultSpawn4Probability).Spawn(&board)

	if res.Value != 4 || board[0][0] != 4 {
		t.Errorf("spawn = %+v, want value 4 at (0,0)", res)
	}
}

func TestSpawnBoardFull(t *testing.T) {
	board := Board{
		{2, 4, 2, 4},
		{4, 2, 4, 2},
		{2, 4, 2, 4},
		{4, 2, 4, 2},
	}
	before := board
	rng := &scriptedRand{}

	res := NewSpawner(rng, DefaultSpawn4Probability).Spawn(&board)

	if !res.BoardFull() {
		t.Error("full board should report BoardFull")
	}
	if board != before {
		t.Error("full board must not be modified")
	}
}

func TestSpawnIncreasesTileCount(t *testing.T) {
	var board Board
	spawner := NewSpawner(rand.New(rand.NewSource(3)), DefaultSpawn4Probability)

	for i := 1; i <= Size*Size; i++ {
		res := spawner.Spawn(&board)
		if !res.Placed {
			t.Fatalf("spawn %d failed with %d empty cells", i, len(board.EmptyCells()))
		}
		if board.TileCount() != i {
			t.Fatalf("TileCount = %d after %d spawns", board.TileCount(), i)
		}
	}

	if !spawner.Spawn(&board).BoardFull() {
		t.Error("17th spawn should report BoardFull")
	}
}

func TestSpawnDistribution(t *testing.T) {
	const n = 20000
	spawner := NewSpawner(rand.New(rand.NewSource(2048)), DefaultSpawn4Probability)

	fours := 0
	cellHits := make(map[Cell]int)
	for range n {
		var board Board
		res := spawner.Spawn(&board)
		if res.Value == 4 {
			fours++
		}
		cellHits[Cell{Row: res.Row, Col: res.Col}]++
	}

	frac := float64(fours) / n
	if frac < 0.09 || frac > 0.11 {
		t.Errorf("fraction of 4s = %.4f, want 0.10 ± 0.01", frac)
	}

	// Uniform placement: each of the 16 cells should get roughly n/16.
	if len(cellHits) != Size*Size {
		t.Errorf("spawns hit %d distinct cells, want %d", len(cellHits), Size*Size)
	}
	for cell, hits := range cellHits {
		if hits < n/16*8/10 || hits > n/16*12/10 {
			t.Errorf("cell %v hit %d times, expected about %d", cell, hits, n/16)
		}
	}
}

func TestNewSpawnerClampsProbability(t *testing.T) {
	s := NewSpawner(rand.New(rand.NewSource(1)), 1.5)
	if s.spawn4Prob != DefaultSpawn4Probability {
		t.Errorf("spawn4Prob = %v, want default", s.spawn4Prob)
	}
}
