package simulation

// Reward mechanics for the block-withholding game, following Eyal's pool
// infiltration model. Infiltrating power earns pool shares inside the victim
// without ever surfacing a block, so it dilutes the victim's revenue while
// contributing nothing to the network's effective mining power.

const (
	// attackEpsilon is the threshold below which an attack rate counts as
	// peaceful when strategies classify opponent behaviour.
	attackEpsilon = 1e-6

	// degenerateEpsilon guards the divisions when infiltration consumes
	// essentially all effective mining power.
	degenerateEpsilon = 1e-9
)

func validShare(m float64) bool {
	return m > 0 && m < 1
}

func validRate(x, share float64) bool {
	return x >= 0 && x <= share
}

func checkPools(shareA, shareB float64) error {
	if !validShare(shareA) || !validShare(shareB) {
		return invalidParamf("pool shares must lie in (0, 1), got %v and %v", shareA, shareB)
	}
	return nil
}

func checkRates(shareA, shareB, alphaA, alphaB float64) error {
	if !validRate(alphaA, shareA) {
		return invalidParamf("attack rate %v outside [0, %v]", alphaA, shareA)
	}
	if !validRate(alphaB, shareB) {
		return invalidParamf("attack rate %v outside [0, %v]", alphaB, shareB)
	}
	return nil
}

// effectiveRates returns both pools' direct mining rates. Infiltrating power
// mines for nobody, so it drops out of the numerator and the network total
// alike.
func effectiveRates(shareA, shareB, alphaA, alphaB float64) (float64, float64) {
	effective := 1 - alphaA - alphaB
	if effective <= degenerateEpsilon {
		return 0, 0
	}
	return (shareA - alphaA) / effective, (shareB - alphaB) / effective
}

// densities computes the revenue densities without validating inputs. Callers
// are responsible for keeping rates within [0, share].
func densities(shareA, shareB, alphaA, alphaB float64) (float64, float64) {
	rateA, rateB := effectiveRates(shareA, shareB, alphaA, alphaB)
	denom := shareA*shareB + shareA*alphaA + shareB*alphaB
	if denom <= 0 {
		return 0, 0
	}
	densityA := (shareB*rateA + alphaA*(rateA+rateB)) / denom
	densityB := (shareA*rateB + alphaB*(rateA+rateB)) / denom
	return densityA, densityB
}

// RevenueDensities returns each pool's expected reward per unit of owned
// power. Density 1 is the honest solo-mining baseline; a successful attacker
// pushes its own density above 1 and the victim's below.
func RevenueDensities(shareA, shareB, alphaA, alphaB float64) (float64, float64, error) {
	if err := checkPools(shareA, shareB); err != nil {
		return 0, 0, err
	}
	if err := checkRates(shareA, shareB, alphaA, alphaB); err != nil {
		return 0, 0, err
	}
	densityA, densityB := densities(shareA, shareB, alphaA, alphaB)
	return densityA, densityB, nil
}

// Reward returns each pool's expected absolute reward per unit time, density
// scaled by pool size. With both rates at zero this reduces to the honest
// proportional split.
func Reward(shareA, shareB, alphaA, alphaB float64) (float64, float64, error) {
	densityA, densityB, err := RevenueDensities(shareA, shareB, alphaA, alphaB)
	if err != nil {
		return 0, 0, err
	}
	return densityA * shareA, densityB * shareB, nil
}

// BestResponse returns pool A's payoff-maximizing attack rate against the
// rival's fixed rate, searched over [lo, hi] which must sit inside
// [0, shareA]. The search uses the default golden-section maximizer and is
// idempotent for identical inputs.
func BestResponse(shareA, shareB, alphaB, lo, hi float64) (float64, error) {
	return bestResponseWith(NewGoldenSection(), shareA, shareB, alphaB, lo, hi)
}

func bestResponseWith(solver Maximizer, shareA, shareB, alphaB, lo, hi float64) (float64, error) {
	if err := checkPools(shareA, shareB); err != nil {
		return 0, err
	}
	if !validRate(alphaB, shareB) {
		return 0, invalidParamf("attack rate %v outside [0, %v]", alphaB, shareB)
	}
	if lo < 0 || hi > shareA || hi < lo {
		return 0, invalidParamf("search bounds [%v, %v] outside [0, %v]", lo, hi, shareA)
	}
	objective := func(alphaA float64) float64 {
		densityA, _ := densities(shareA, shareB, alphaA, alphaB)
		return densityA * shareA
	}
	return solver.Maximize(objective, lo, hi)
}

// UnilateralGain returns the fractional payoff gain pool A realizes by playing
// its optimal attack against a peaceful pool B, relative to mutual peace. A
// positive result is the economic temptation the retaliation strategies exist
// to deter.
func UnilateralGain(shareA, shareB float64) (float64, error) {
	peace, _, err := Reward(shareA, shareB, 0, 0)
	if err != nil {
		return 0, err
	}
	optimal, err := BestResponse(shareA, shareB, 0, 0, shareA)
	if err != nil {
		return 0, err
	}
	attacked, _, err := Reward(shareA, shareB, optimal, 0)
	if err != nil {
		return 0, err
	}
	return (attacked - peace) / peace, nil
}
