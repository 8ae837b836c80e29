package simulation

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/sirupsen/logrus"
)

// Entrant names a strategy and knows how to build a fresh instance of it.
// Strategy state is match-scoped, so every pairing gets its own instance; the
// rand source is already derived for that pairing and seat.
type Entrant struct {
	Name string
	Make func(rng *rand.Rand) Strategy
}

// Tournament plays the full pairwise grid between its entrants, every pairing
// an independent match of the same length between equal-sized pools. Pairings
// are ordered, so each entrant also plays itself and both seats of every
// rivalry.
type Tournament struct {
	entrants []Entrant
	share    float64
	rounds   int
	seed     uint64
}

func NewTournament(entrants []Entrant, share float64, rounds int, seed uint64) (*Tournament, error) {
	if len(entrants) == 0 {
		return nil, invalidParamf("tournament needs at least one entrant")
	}
	if !validShare(share) {
		return nil, invalidParamf("pool share must lie in (0, 1), got %v", share)
	}
	if rounds < 1 {
		return nil, invalidParamf("round count must be at least 1, got %d", rounds)
	}
	return &Tournament{
		entrants: entrants,
		share:    share,
		rounds:   rounds,
		seed:     seed,
	}, nil
}

// ScoreMatrix holds the row player's total payoff for every pairing, plus the
// per-entrant average used for ranking.
type ScoreMatrix struct {
	Names    []string
	Scores   [][]float64 // Scores[i][j]: entrant i's total as seat A against entrant j
	Averages []float64
}

// Run plays every pairing concurrently, one goroutine per match. Matches
// share no mutable state and each goroutine writes its own cell; the mutex
// only guards error capture. Per-pairing rand sources derive from the
// tournament seed, so the grid is reproducible regardless of scheduling.
func (t *Tournament) Run() (*ScoreMatrix, error) {
	n := len(t.entrants)
	matrix := &ScoreMatrix{
		Names:    make([]string, n),
		Scores:   make([][]float64, n),
		Averages: make([]float64, n),
	}
	for i, entrant := range t.entrants {
		matrix.Names[i] = entrant.Name
		matrix.Scores[i] = make([]float64, n)
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	for i := range t.entrants {
		for j := range t.entrants {
			wg.Add(1)
			go func(i, j int) {
				defer wg.Done()
				rowPlayer := t.entrants[i].Make(DeriveSource(t.seed, uint64(i), uint64(j), uint64(SeatA)))
				colPlayer := t.entrants[j].Make(DeriveSource(t.seed, uint64(i), uint64(j), uint64(SeatB)))
				hist, err := RunMatch(rowPlayer, colPlayer, t.share, t.share, t.rounds)
				if err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = fmt.Errorf("%s vs %s: %w", t.entrants[i].Name, t.entrants[j].Name, err)
					}
					mu.Unlock()
					return
				}
				matrix.Scores[i][j] = hist.TotalA
			}(i, j)
		}
	}
	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}

	for i := range matrix.Scores {
		sum := 0.0
		for _, score := range matrix.Scores[i] {
			sum += score
		}
		matrix.Averages[i] = sum / float64(n)
	}

	log.WithFields(logrus.Fields{
		"entrants": n,
		"rounds":   t.rounds,
		"share":    t.share,
	}).Info("tournament finished")
	return matrix, nil
}
