package simulation

import (
	"fmt"

	"github.com/dominant-strategies/go-quai/event"
	"github.com/sirupsen/logrus"
)

// Round is the immutable record of one completed round.
type Round struct {
	Index   int
	AttackA float64
	AttackB float64
	RewardA float64
	RewardB float64
}

// Rate returns the attack rate the given seat played this round.
func (r Round) Rate(seat Seat) float64 {
	if seat == SeatA {
		return r.AttackA
	}
	return r.AttackB
}

// Reward returns the reward the given seat earned this round.
func (r Round) Reward(seat Seat) float64 {
	if seat == SeatA {
		return r.RewardA
	}
	return r.RewardB
}

func (r Round) String() string {
	return fmt.Sprintf("{ Round: %v, AttackA: %v, AttackB: %v, RewardA: %v, RewardB: %v }",
		r.Index, r.AttackA, r.AttackB, r.RewardA, r.RewardB)
}

// History is the append-only record of completed rounds, ordered by round
// index. Strategies only ever see the prefix completed before their move.
type History []Round

// Last returns the most recently completed round, if any.
func (h History) Last() (Round, bool) {
	if len(h) == 0 {
		return Round{}, false
	}
	return h[len(h)-1], true
}

// MatchHistory is the result shape handed to downstream consumers: the full
// ordered round log plus both cumulative totals.
type MatchHistory struct {
	Rounds History
	TotalA float64
	TotalB float64
}

// Match drives one repeated game between two pools. Each match owns its two
// strategy instances and its history; concurrent matches share nothing
// mutable.
type Match struct {
	strategyA Strategy
	strategyB Strategy
	shareA    float64
	shareB    float64
	rounds    int

	roundFeed event.Feed
}

func NewMatch(strategyA, strategyB Strategy, shareA, shareB float64, rounds int) (*Match, error) {
	if err := checkPools(shareA, shareB); err != nil {
		return nil, err
	}
	if rounds < 1 {
		return nil, invalidParamf("round count must be at least 1, got %d", rounds)
	}
	return &Match{
		strategyA: strategyA,
		strategyB: strategyB,
		shareA:    shareA,
		shareB:    shareB,
		rounds:    rounds,
	}, nil
}

// SubscribeRounds streams every completed round to ch until the subscription
// is cancelled. Subscribers never see a round before it is in the history.
func (m *Match) SubscribeRounds(ch chan<- Round) event.Subscription {
	return m.roundFeed.Subscribe(ch)
}

// Run plays the match to completion and returns the full history. Rounds are
// strictly sequential: each decision sees only rounds already scored, and no
// round is computed before the previous outcome is appended.
func (m *Match) Run() (*MatchHistory, error) {
	result := &MatchHistory{Rounds: make(History, 0, m.rounds)}
	for i := 1; i <= m.rounds; i++ {
		moveA, err := m.strategyA.NextRate(result.Rounds, SeatA, m.shareA, m.shareB)
		if err != nil {
			return nil, fmt.Errorf("%s (seat A) failed on round %d: %w", m.strategyA.Name(), i, err)
		}
		moveB, err := m.strategyB.NextRate(result.Rounds, SeatB, m.shareB, m.shareA)
		if err != nil {
			return nil, fmt.Errorf("%s (seat B) failed on round %d: %w", m.strategyB.Name(), i, err)
		}

		rewardA, rewardB, err := Reward(m.shareA, m.shareB, moveA, moveB)
		if err != nil {
			return nil, fmt.Errorf("round %d: %w", i, err)
		}

		round := Round{
			Index:   i,
			AttackA: moveA,
			AttackB: moveB,
			RewardA: rewardA,
			RewardB: rewardB,
		}
		result.Rounds = append(result.Rounds, round)
		result.TotalA += rewardA
		result.TotalB += rewardB

		m.roundFeed.Send(round)
		log.WithFields(logrus.Fields{
			"round":   i,
			"attackA": moveA,
			"attackB": moveB,
			"rewardA": rewardA,
			"rewardB": rewardB,
		}).Debug("round scored")
	}

	log.WithFields(logrus.Fields{
		"strategyA": m.strategyA.Name(),
		"strategyB": m.strategyB.Name(),
		"rounds":    m.rounds,
		"totalA":    result.TotalA,
		"totalB":    result.TotalB,
	}).Info("match finished")
	return result, nil
}

// RunMatch is the one-shot form of NewMatch followed by Run.
func RunMatch(strategyA, strategyB Strategy, shareA, shareB float64, rounds int) (*MatchHistory, error) {
	match, err := NewMatch(strategyA, strategyB, shareA, shareB, rounds)
	if err != nil {
		return nil, err
	}
	return match.Run()
}
