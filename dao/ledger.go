package dao

import (
	"Petly/internal/loyalty"
	"Petly/models"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrUserNotFound = errors.New("user not found")

// Ledger applies every change of a loyalty account inside one transaction.
type Ledger struct {
	Db *gorm.DB
}

func NewLedger(db *gorm.DB) *Ledger {
	return &Ledger{Db: db}
}

type GrantCmd struct {
	UserID         uint64
	Action         loyalty.Action
	Points         int64
	Stars          int
	Description    string
	Metadata       map[string]any
	IdempotencyKey string
}

type GrantResult struct {
	Account   loyalty.Account
	Duplicate bool
	RecordID  uint64
}

func accountOf(u *models.Users) loyalty.Account {
	return loyalty.AccountOf(u.RewardPoints, u.TotalLifetimePoints, u.RewardTier, u.LoyaltyStars)
}

func lockUser(tx *gorm.DB, userID uint64) (*models.Users, error) {
	var user models.Users
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", userID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	return &user, err
}

// Grant credits points once per idempotency key. A repeated key returns the
// current account with Duplicate set and changes nothing.
func (l *Ledger) Grant(ctx context.Context, cmd GrantCmd) (*GrantResult, error) {
	if cmd.IdempotencyKey == "" {
		return nil, errors.New("dao.Ledger.Grant: empty idempotency key")
	}
	if cmd.Points <= 0 {
		return nil, fmt.Errorf("dao.Ledger.Grant: non-positive amount %d", cmd.Points)
	}

	var res GrantResult
	err := l.Db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.RewardAction
		found := tx.Where("idempotency_key = ?", cmd.IdempotencyKey).Limit(1).Find(&existing)
		if found.Error != nil {
			return found.Error
		}
		if found.RowsAffected > 0 {
			var user models.Users
			if err := tx.Where("id = ?", cmd.UserID).First(&user).Error; err != nil {
				return err
			}
			res = GrantResult{Account: accountOf(&user), Duplicate: true, RecordID: existing.ID}
			return nil
		}

		user, err := lockUser(tx, cmd.UserID)
		if err != nil {
			return err
		}
		acc := accountOf(user).Credit(cmd.Points, cmd.Stars)

		if err := tx.Model(&models.Users{}).Where("id = ?", cmd.UserID).Updates(map[string]any{
			"reward_points":         acc.Points,
			"total_lifetime_points": acc.Lifetime,
			"reward_tier":           string(acc.Tier),
			"loyalty_stars":         acc.Stars,
		}).Error; err != nil {
			return err
		}

		record := &models.RewardAction{
			UserID:         cmd.UserID,
			UserEmail:      user.Email,
			ActionType:     string(cmd.Action),
			Points:         cmd.Points,
			Stars:          cmd.Stars,
			Description:    cmd.Description,
			Metadata:       metadata(cmd.Metadata),
			IdempotencyKey: cmd.IdempotencyKey,
		}
		if err := tx.Create(record).Error; err != nil {
			return err
		}
		res = GrantResult{Account: acc, RecordID: record.ID}
		return nil
	})

	// a concurrent grant with the same key won the unique index
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		var user models.Users
		if ferr := l.Db.WithContext(ctx).Where("id = ?", cmd.UserID).First(&user).Error; ferr != nil {
			return nil, fmt.Errorf("dao.Ledger.Grant: %w", ferr)
		}
		return &GrantResult{Account: accountOf(&user), Duplicate: true}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("dao.Ledger.Grant: %w", err)
	}
	return &res, nil
}

type RedeemCmd struct {
	UserID               uint64
	Title                string
	Cost                 int64
	MinTier              loyalty.Tier
	ValidDays            int
	PlatformRewardID     *uint64
	BusinessRedeemableID *uint64
	BusinessID           *uint64
	IdempotencyKey       string
	Now                  time.Time
}

type RedeemResult struct {
	Account    loyalty.Account
	Redemption *models.RewardRedemption
	Duplicate  bool
}

// Redeem debits the balance and records the redemption atomically.
// Lifetime points and tier are left untouched.
func (l *Ledger) Redeem(ctx context.Context, cmd RedeemCmd) (*RedeemResult, error) {
	if cmd.IdempotencyKey == "" {
		return nil, errors.New("dao.Ledger.Redeem: empty idempotency key")
	}

	var res RedeemResult
	err := l.Db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.RewardRedemption
		found := tx.Where("idempotency_key = ?", cmd.IdempotencyKey).Limit(1).Find(&existing)
		if found.Error != nil {
			return found.Error
		}
		if found.RowsAffected > 0 {
			var user models.Users
			if err := tx.Where("id = ?", cmd.UserID).First(&user).Error; err != nil {
				return err
			}
			res = RedeemResult{Account: accountOf(&user), Redemption: &existing, Duplicate: true}
			return nil
		}

		user, err := lockUser(tx, cmd.UserID)
		if err != nil {
			return err
		}
		acc := accountOf(user)
		if cmd.MinTier != "" && !loyalty.TierFor(acc.Lifetime).AtLeast(cmd.MinTier) {
			return loyalty.ErrTierTooLow
		}
		acc, err = acc.Spend(cmd.Cost)
		if err != nil {
			return err
		}

		if err := tx.Model(&models.Users{}).Where("id = ?", cmd.UserID).
			Update("reward_points", acc.Points).Error; err != nil {
			return err
		}

		redemption := &models.RewardRedemption{
			UserID:               cmd.UserID,
			UserEmail:            user.Email,
			PlatformRewardID:     cmd.PlatformRewardID,
			BusinessRedeemableID: cmd.BusinessRedeemableID,
			BusinessID:           cmd.BusinessID,
			Title:                cmd.Title,
			PointsSpent:          cmd.Cost,
			Status:               models.RedemptionActive,
			IdempotencyKey:       cmd.IdempotencyKey,
		}
		if cmd.ValidDays > 0 {
			expires := cmd.Now.AddDate(0, 0, cmd.ValidDays)
			redemption.ExpiresAt = &expires
		}
		if err := tx.Create(redemption).Error; err != nil {
			return err
		}
		res = RedeemResult{Account: acc, Redemption: redemption}
		return nil
	})
	if err != nil {
		if errors.Is(err, loyalty.ErrTierTooLow) || errors.Is(err, loyalty.ErrInsufficientPoints) || errors.Is(err, ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("dao.Ledger.Redeem: %w", err)
	}
	return &res, nil
}

func metadata(m map[string]any) datatypes.JSON {
	if len(m) == 0 {
		return nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil
	}
	return datatypes.JSON(b)
}
