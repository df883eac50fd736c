package loyalty

import "fmt"

type Tier string

const (
	Bronze   Tier = "bronze"
	Silver   Tier = "silver"
	Gold     Tier = "gold"
	Platinum Tier = "platinum"
)

// Lifetime point thresholds. TierFor is the only consumer.
const (
	SilverThreshold   int64 = 500
	GoldThreshold     int64 = 1000
	PlatinumThreshold int64 = 2000
)

var ladder = []struct {
	tier Tier
	min  int64
}{
	{Platinum, PlatinumThreshold},
	{Gold, GoldThreshold},
	{Silver, SilverThreshold},
	{Bronze, 0},
}

// TierFor maps lifetime points to a tier.
func TierFor(lifetime int64) Tier {
	for _, step := range ladder {
		if lifetime >= step.min {
			return step.tier
		}
	}
	return Bronze
}

// NextTier returns the tier above the one lifetime maps to and the points still missing.
// ok is false at platinum.
func NextTier(lifetime int64) (next Tier, missing int64, ok bool) {
	current := TierFor(lifetime)
	for i := len(ladder) - 1; i >= 0; i-- {
		if ladder[i].tier.Rank() == current.Rank()+1 {
			return ladder[i].tier, ladder[i].min - lifetime, true
		}
	}
	return "", 0, false
}

func (t Tier) Rank() int {
	switch t {
	case Silver:
		return 1
	case Gold:
		return 2
	case Platinum:
		return 3
	default:
		return 0
	}
}

// AtLeast reports whether t is the same as or above min.
func (t Tier) AtLeast(min Tier) bool {
	return t.Rank() >= min.Rank()
}

func ParseTier(s string) (Tier, error) {
	switch t := Tier(s); t {
	case Bronze, Silver, Gold, Platinum:
		return t, nil
	}
	return "", fmt.Errorf("unknown tier %q", s)
}
