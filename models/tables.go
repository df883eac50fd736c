package models

// Tables lists every model for schema migration.
func Tables() []any {
	return []any{
		&Users{},
		&Business{},
		&BusinessService{},
		&Pet{},
		&Appointment{},
		&RewardAction{},
		&RewardRedemption{},
		&PlatformReward{},
		&BusinessRedeemable{},
		&Notification{},
		&Review{},
		&ReferralInvitation{},
	}
}
