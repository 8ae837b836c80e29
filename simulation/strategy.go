package simulation

import (
	"fmt"
	"math"
	"math/rand"
)

// Seat identifies which side of the bilateral history a strategy occupies.
type Seat int

const (
	SeatA Seat = iota
	SeatB
)

func (s Seat) Other() Seat {
	if s == SeatA {
		return SeatB
	}
	return SeatA
}

func (s Seat) String() string {
	if s == SeatA {
		return "A"
	}
	return "B"
}

// Strategy produces the attack rate to play next, given the rounds completed
// so far and the seat it occupies. Both seats see the identical bilateral
// history. Implementations keep their state private to one match and never
// share it with the opposing instance.
type Strategy interface {
	Name() string
	NextRate(hist History, seat Seat, ownShare, oppShare float64) (float64, error)
}

// opponentPrevRate returns the rival's rate from the last completed round, or
// 0 when no round has completed yet.
func opponentPrevRate(hist History, seat Seat) float64 {
	last, ok := hist.Last()
	if !ok {
		return 0
	}
	return last.Rate(seat.Other())
}

// Static plays one fixed rate forever, clamped to its own share. It is the
// control group: Static(0) is permanent peace, Static(1) permanent full war.
type Static struct {
	rate float64
	name string
}

func NewStatic(rate float64) *Static {
	return &Static{rate: rate, name: fmt.Sprintf("Static(%v)", rate)}
}

// NewPeace returns the always-cooperate strategy.
func NewPeace() *Static {
	return &Static{rate: 0, name: "Peace"}
}

func (s *Static) Name() string { return s.name }

func (s *Static) NextRate(hist History, seat Seat, ownShare, oppShare float64) (float64, error) {
	return math.Min(s.rate, ownShare), nil
}

// Random flips a coin every round between full peace and the maximum attack,
// ignoring history entirely.
type Random struct {
	prob float64
	rng  *rand.Rand
}

func NewRandom(rng *rand.Rand) *Random {
	return NewRandomProb(0.5, rng)
}

// NewRandomProb overrides the attack probability.
func NewRandomProb(prob float64, rng *rand.Rand) *Random {
	return &Random{prob: prob, rng: rng}
}

func (r *Random) Name() string { return "Random" }

func (r *Random) NextRate(hist History, seat Seat, ownShare, oppShare float64) (float64, error) {
	if r.rng.Float64() < r.prob {
		return ownShare, nil
	}
	return 0, nil
}

// TitForTat opens peacefully and then mirrors the opponent's previous rate,
// clamped to what it can actually field.
type TitForTat struct{}

func NewTitForTat() *TitForTat { return &TitForTat{} }

func (t *TitForTat) Name() string { return "TitForTat" }

func (t *TitForTat) NextRate(hist History, seat Seat, ownShare, oppShare float64) (float64, error) {
	return math.Min(opponentPrevRate(hist, seat), ownShare), nil
}

// Friedman is the grim trigger: cooperative until first provoked, then the
// maximum attack for the rest of the match. The retaliating state is
// absorbing, even if the opponent returns to peace.
type Friedman struct {
	triggered bool
}

func NewFriedman() *Friedman { return &Friedman{} }

func (f *Friedman) Name() string { return "Friedman" }

func (f *Friedman) NextRate(hist History, seat Seat, ownShare, oppShare float64) (float64, error) {
	if !f.triggered && opponentPrevRate(hist, seat) > attackEpsilon {
		f.triggered = true
	}
	if f.triggered {
		return ownShare, nil
	}
	return 0, nil
}

// Joss mirrors like TitForTat but, on rounds where the mirror would stay
// peaceful, sneaks a full attack with fixed probability.
type Joss struct {
	sneakProb float64
	rng       *rand.Rand
}

func NewJoss(rng *rand.Rand) *Joss {
	return NewJossProb(0.1, rng)
}

// NewJossProb overrides the sneak-attack probability.
func NewJossProb(sneakProb float64, rng *rand.Rand) *Joss {
	return &Joss{sneakProb: sneakProb, rng: rng}
}

func (j *Joss) Name() string { return "Joss" }

func (j *Joss) NextRate(hist History, seat Seat, ownShare, oppShare float64) (float64, error) {
	mirror := math.Min(opponentPrevRate(hist, seat), ownShare)
	if mirror > attackEpsilon {
		return mirror, nil
	}
	if j.rng.Float64() < j.sneakProb {
		return ownShare, nil
	}
	return 0, nil
}

// Nash best-responds to whatever the opponent played last round, assuming a
// peaceful rival on the opening round. Two Nash pools walk the best-response
// dynamics down to the mutual-attack equilibrium within a few rounds.
type Nash struct {
	responder *BestResponder
}

func NewNash() *Nash {
	return NewNashWith(NewBestResponder())
}

// NewNashWith substitutes a shared or differently configured responder.
func NewNashWith(responder *BestResponder) *Nash {
	return &Nash{responder: responder}
}

func (n *Nash) Name() string { return "Nash" }

func (n *Nash) NextRate(hist History, seat Seat, ownShare, oppShare float64) (float64, error) {
	return n.responder.Respond(ownShare, oppShare, opponentPrevRate(hist, seat))
}
