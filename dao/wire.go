package dao

import (
	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	NewUsers,
	NewLedger,
	NewPets,
	NewBusinesses,
	NewBusinessServices,
	NewRedeemables,
	NewAppointments,
	NewNotifications,
	NewReviews,
	NewReferrals,
	NewRewardActions,
	NewPlatformRewards,
	NewRedemptions,
)
