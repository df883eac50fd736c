package loyalty

import "time"

var milestoneBonuses = map[int64]int64{
	2: 50,
	4: 100,
	6: 150,
}

// MilestoneBonus returns the bonus earned when the completed count reaches exactly n.
func MilestoneBonus(completed int64) (int64, bool) {
	bonus, ok := milestoneBonuses[completed]
	return bonus, ok
}

// EarlyCancellationWindow is inclusive: cancelling exactly 24h ahead still earns.
const EarlyCancellationWindow = 24 * time.Hour

// CancellationPoints is the early_cancellation award, zero when too late.
func CancellationPoints(appointmentAt, cancelledAt time.Time) int64 {
	if appointmentAt.Sub(cancelledAt) >= EarlyCancellationWindow {
		return PointsFor(EarlyCancellation)
	}
	return 0
}

// EarnsProfileCompletion is true when a profile with no display name and no
// phone gains both in one update.
func EarnsProfileCompletion(beforeName, beforePhone, afterName, afterPhone string) bool {
	return beforeName == "" && beforePhone == "" && afterName != "" && afterPhone != ""
}
