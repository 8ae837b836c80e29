package simulation

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

const responderCacheSize = 4096

type responseKey struct {
	own     float64
	opp     float64
	oppRate float64
}

// BestResponder answers best-response queries through an LRU memo, so a Nash
// pool replaying a converged rivalry does not re-run the numerical search
// every round. The memo is pure memoization and never changes a result.
type BestResponder struct {
	solver Maximizer
	cache  *lru.Cache[responseKey, float64]
}

func NewBestResponder() *BestResponder {
	return NewBestResponderWith(NewGoldenSection())
}

// NewBestResponderWith substitutes a different bounded scalar maximizer.
func NewBestResponderWith(solver Maximizer) *BestResponder {
	cache, _ := lru.New[responseKey, float64](responderCacheSize)
	return &BestResponder{
		solver: solver,
		cache:  cache,
	}
}

// Respond returns the attack rate maximizing own reward against the rival's
// fixed rate, searched over the full feasible interval [0, own].
func (br *BestResponder) Respond(own, opp, oppRate float64) (float64, error) {
	key := responseKey{own: own, opp: opp, oppRate: oppRate}
	if rate, ok := br.cache.Get(key); ok {
		return rate, nil
	}
	rate, err := bestResponseWith(br.solver, own, opp, oppRate, 0, own)
	if err != nil {
		return 0, err
	}
	br.cache.Add(key, rate)
	return rate, nil
}
