package simulation

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// scripted replays a fixed move sequence, for driving the strategy under test
// through a known opponent line.
type scripted struct {
	moves []float64
}

func (s *scripted) Name() string { return "Scripted" }

func (s *scripted) NextRate(hist History, seat Seat, ownShare, oppShare float64) (float64, error) {
	return s.moves[len(hist)], nil
}

func attacksOf(hist History, seat Seat) []float64 {
	rates := make([]float64, len(hist))
	for i, round := range hist {
		rates[i] = round.Rate(seat)
	}
	return rates
}

func TestPeaceAlwaysCooperates(t *testing.T) {
	hist, err := RunMatch(NewPeace(), NewStatic(0.15), 0.2, 0.2, 20)
	require.NoError(t, err)
	for _, round := range hist.Rounds {
		require.Zero(t, round.AttackA)
		require.Equal(t, 0.15, round.AttackB)
	}
}

func TestStaticClampsToOwnShare(t *testing.T) {
	rate, err := NewStatic(0.5).NextRate(nil, SeatA, 0.2, 0.2)
	require.NoError(t, err)
	require.Equal(t, 0.2, rate)
}

func TestTitForTatMirrorsWithOneRoundLag(t *testing.T) {
	opponent := &scripted{moves: []float64{0, 0, 0.05, 0, 0}}

	hist, err := RunMatch(NewTitForTat(), opponent, 0.2, 0.2, 5)
	require.NoError(t, err)
	require.Equal(t, []float64{0, 0, 0, 0.05, 0}, attacksOf(hist.Rounds, SeatA))
}

func TestTitForTatClampsMirrorToOwnShare(t *testing.T) {
	opponent := &scripted{moves: []float64{0.3, 0}}

	hist, err := RunMatch(NewTitForTat(), opponent, 0.2, 0.35, 2)
	require.NoError(t, err)
	require.Equal(t, []float64{0, 0.2}, attacksOf(hist.Rounds, SeatA))
}

func TestFriedmanTriggerIsAbsorbing(t *testing.T) {
	// One provocation on round 3, then 57 peaceful rounds.
	moves := make([]float64, 60)
	moves[2] = 0.01
	opponent := &scripted{moves: moves}

	hist, err := RunMatch(NewFriedman(), opponent, 0.2, 0.2, 60)
	require.NoError(t, err)

	rates := attacksOf(hist.Rounds, SeatA)
	for i, rate := range rates {
		if i < 3 {
			require.Zero(t, rate, "round %d should be cooperative", i+1)
		} else {
			require.Equal(t, 0.2, rate, "round %d should retaliate at full strength", i+1)
		}
	}
}

func TestFriedmanStaysCooperativeUnprovoked(t *testing.T) {
	hist, err := RunMatch(NewFriedman(), NewPeace(), 0.2, 0.2, 30)
	require.NoError(t, err)
	for _, rate := range attacksOf(hist.Rounds, SeatA) {
		require.Zero(t, rate)
	}
}

func TestJossMirrorsAttacksDeterministically(t *testing.T) {
	joss := NewJoss(DeriveSource(1))
	hist := History{{Index: 1, AttackA: 0, AttackB: 0.05}}

	rate, err := joss.NextRate(hist, SeatA, 0.2, 0.2)
	require.NoError(t, err)
	require.Equal(t, 0.05, rate, "a provoked Joss mirrors without drawing")
}

func TestJossSneaksAgainstPeace(t *testing.T) {
	opponent := &scripted{moves: make([]float64, 200)}

	hist, err := RunMatch(NewJoss(DeriveSource(42)), opponent, 0.2, 0.2, 200)
	require.NoError(t, err)

	sneaks := 0
	for _, rate := range attacksOf(hist.Rounds, SeatA) {
		if rate > 0 {
			require.Equal(t, 0.2, rate, "a sneak defection goes in at full strength")
			sneaks++
		}
	}
	require.Greater(t, sneaks, 0, "200 peaceful rounds should draw at least one sneak")
	require.Less(t, sneaks, 100, "sneaks should stay well below the coin-flip rate")
}

func TestRandomCoinFlips(t *testing.T) {
	random := NewRandom(DeriveSource(7))

	attacks, peaces := 0, 0
	for i := 0; i < 100; i++ {
		rate, err := random.NextRate(nil, SeatA, 0.2, 0.2)
		require.NoError(t, err)
		switch rate {
		case 0.2:
			attacks++
		case 0:
			peaces++
		default:
			t.Fatalf("Random played %v, want 0 or full share", rate)
		}
	}
	require.Greater(t, attacks, 0)
	require.Greater(t, peaces, 0)
}

func TestNashOpeningMove(t *testing.T) {
	nash := NewNash()

	opening, err := nash.NextRate(nil, SeatA, 0.2, 0.2)
	require.NoError(t, err)

	expected, err := BestResponse(0.2, 0.2, 0, 0, 0.2)
	require.NoError(t, err)
	require.Equal(t, expected, opening, "round 1 assumes a peaceful rival")
}

func TestNashDynamicsConverge(t *testing.T) {
	hist, err := RunMatch(NewNash(), NewNash(), 0.2, 0.2, 20)
	require.NoError(t, err)

	rounds := hist.Rounds
	last := rounds[len(rounds)-1]
	previous := rounds[len(rounds)-2]

	// Symmetric pools, so the dynamics stay symmetric and settle.
	require.Equal(t, last.AttackA, last.AttackB)
	require.InDelta(t, previous.AttackA, last.AttackA, 1e-3)
	require.Greater(t, last.AttackA, 0.0)

	// The miner's dilemma: equilibrium pays both pools less than peace.
	peaceA, _, err := Reward(0.2, 0.2, 0, 0)
	require.NoError(t, err)
	require.Less(t, last.RewardA, peaceA)
}
