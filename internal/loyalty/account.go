package loyalty

import "errors"

var ErrInsufficientPoints = errors.New("insufficient points")

// Account is the loyalty state carried on a user row.
type Account struct {
	Points   int64
	Lifetime int64
	Tier     Tier
	Stars    int
}

// Credit adds a grant. Tier is recomputed from lifetime points, never patched.
func (a Account) Credit(points int64, stars int) Account {
	a.Points += points
	a.Lifetime += points
	a.Stars += stars
	a.Tier = TierFor(a.Lifetime)
	return a
}

// Spend debits the balance only; lifetime points never decrease.
func (a Account) Spend(points int64) (Account, error) {
	if points <= 0 {
		return a, errors.New("spend must be positive")
	}
	if a.Points < points {
		return a, ErrInsufficientPoints
	}
	a.Points -= points
	return a, nil
}

var ErrTierTooLow = errors.New("tier too low")

// AccountOf reads the loyalty fields of a stored user row.
func AccountOf(points, lifetime int64, tier string, stars int) Account {
	t, err := ParseTier(tier)
	if err != nil {
		t = TierFor(lifetime)
	}
	return Account{Points: points, Lifetime: lifetime, Tier: t, Stars: stars}
}
