package engine

// DefaultSpawn4Probability is the chance that a spawned tile is a 4.
const DefaultSpawn4Probability = 0.10

// RandSource is the randomness used for tile placement.
// *math/rand.Rand satisfies it; tests can supply a fixed sequence.
type RandSource interface {
	Intn(n int) int
	Float64() float64
}

// SpawnResult describes the outcome of a spawn attempt.
// Placed is false when the board had no empty cell.
type SpawnResult struct {
	Placed bool
	Row    int
	Col    int
	Value  uint32
}

// BoardFull reports whether the spawn failed because no cell was empty.
func (r SpawnResult) BoardFull() bool {
	return !r.Placed
}

// Spawner places new tiles on random empty cells.
type Spawner struct {
	rng        RandSource
	spawn4Prob float64
}

// NewSpawner creates a spawner. A probability outside [0, 1] falls back to
// DefaultSpawn4Probability.
func NewSpawner(rng RandSource, spawn4Prob float64) *Spawner {
	if spawn4Prob < 0 || spawn4Prob > 1 {
		spawn4Prob = DefaultSpawn4Probability
	}
	return &Spawner{
		rng:        rng,
		spawn4Prob: spawn4Prob,
	}
}

// Spawn places a 2 (or a 4, with the configured probability) on a uniformly
// chosen empty cell of b. A full board is left untouched.
func (s *Spawner) Spawn(b *Board) SpawnResult {
	empty := b.EmptyCells()
	if len(empty) == 0 {
		return SpawnResult{}
	}

	cell := empty[s.rng.Intn(len(empty))]

	value := uint32(2)
	if s.rng.Float64() < s.spawn4Prob {
		value = 4
	}

	b.Set(cell.Row, cell.Col, value)
	return SpawnResult{
		Placed: true,
		Row:    cell.Row,
		Col:    cell.Col,
		Value:  value,
	}
}
