package loyalty

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTierFor(t *testing.T) {
	cases := []struct {
		lifetime int64
		want     Tier
	}{
		{0, Bronze},
		{499, Bronze},
		{500, Silver},
		{999, Silver},
		{1000, Gold},
		{1999, Gold},
		{2000, Platinum},
		{1_000_000, Platinum},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, TierFor(c.lifetime), "lifetime=%d", c.lifetime)
	}
}

func TestTierFor_Monotonic(t *testing.T) {
	prev := TierFor(0)
	for p := int64(1); p <= 2500; p++ {
		cur := TierFor(p)
		require.GreaterOrEqual(t, cur.Rank(), prev.Rank(), "tier dropped at %d", p)
		prev = cur
	}
}

func TestNextTier(t *testing.T) {
	next, missing, ok := NextTier(490)
	require.True(t, ok)
	assert.Equal(t, Silver, next)
	assert.Equal(t, int64(10), missing)

	next, missing, ok = NextTier(1500)
	require.True(t, ok)
	assert.Equal(t, Platinum, next)
	assert.Equal(t, int64(500), missing)

	_, _, ok = NextTier(2000)
	assert.False(t, ok)
}

func TestTier_AtLeast(t *testing.T) {
	assert.True(t, Gold.AtLeast(Silver))
	assert.True(t, Silver.AtLeast(Silver))
	assert.False(t, Bronze.AtLeast(Silver))
}

func TestAward(t *testing.T) {
	points, stars, err := Award(ReviewSubmitted, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(30), points)
	assert.Equal(t, 1, stars)

	points, _, err = Award(AppointmentMilestone, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(100), points)

	_, _, err = Award(ManualAdjustment, 0)
	assert.Error(t, err)

	_, _, err = Award(Action("bogus"), 10)
	assert.ErrorIs(t, err, ErrUnknownAction)
}

func TestPointTable(t *testing.T) {
	want := map[Action]int64{
		ProfileCompleted:     50,
		PetRegistered:        40,
		PetUpdated:           10,
		PetPhotoUploaded:     15,
		AppointmentBooked:    30,
		AppointmentCompleted: 40,
		ReviewSubmitted:      30,
		EarlyCancellation:    10,
		ReferralUser:         150,
		ReferralBusiness:     250,
	}
	for a, p := range want {
		assert.Equal(t, p, PointsFor(a), string(a))
		assert.True(t, a.Valid())
	}
}

func TestMilestoneBonus(t *testing.T) {
	for n := int64(0); n <= 10; n++ {
		bonus, ok := MilestoneBonus(n)
		switch n {
		case 2:
			assert.True(t, ok)
			assert.Equal(t, int64(50), bonus)
		case 4:
			assert.True(t, ok)
			assert.Equal(t, int64(100), bonus)
		case 6:
			assert.True(t, ok)
			assert.Equal(t, int64(150), bonus)
		default:
			assert.False(t, ok, "n=%d", n)
		}
	}
}

func TestCancellationPoints(t *testing.T) {
	at := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, int64(10), CancellationPoints(at, at.Add(-24*time.Hour)))
	assert.Equal(t, int64(10), CancellationPoints(at, at.Add(-72*time.Hour)))
	assert.Equal(t, int64(0), CancellationPoints(at, at.Add(-24*time.Hour+time.Second)))
	assert.Equal(t, int64(0), CancellationPoints(at, at.Add(time.Hour)))
}

func TestEarnsProfileCompletion(t *testing.T) {
	assert.True(t, EarnsProfileCompletion("", "", "Ana", "600123123"))
	assert.False(t, EarnsProfileCompletion("Ana", "", "Ana", "600123123"))
	assert.False(t, EarnsProfileCompletion("", "", "Ana", ""))
}

func TestAccount_CreditCrossesTier(t *testing.T) {
	acc := Account{Points: 490, Lifetime: 490, Tier: Bronze}

	acc = acc.Credit(PointsFor(ProfileCompleted), 0)
	assert.Equal(t, int64(540), acc.Points)
	assert.Equal(t, int64(540), acc.Lifetime)
	assert.Equal(t, Silver, acc.Tier)
}

func TestAccount_SpendKeepsLifetime(t *testing.T) {
	acc := Account{Points: 600, Lifetime: 1200, Tier: Gold}

	after, err := acc.Spend(500)
	require.NoError(t, err)
	assert.Equal(t, int64(100), after.Points)
	assert.Equal(t, int64(1200), after.Lifetime)
	assert.Equal(t, Gold, after.Tier)

	_, err = after.Spend(101)
	assert.ErrorIs(t, err, ErrInsufficientPoints)
}
