package service

import (
	"Petly/dao"
	"Petly/dao/cache"
	"Petly/pkg/oss"

	"github.com/google/wire"
)

// StoreSet binds the storage contracts to the dao and cache implementations.
var StoreSet = wire.NewSet(
	wire.Bind(new(UserStore), new(*dao.Users)),
	wire.Bind(new(LedgerStore), new(*dao.Ledger)),
	wire.Bind(new(RewardActionStore), new(*dao.RewardActions)),
	wire.Bind(new(PetStore), new(*dao.Pets)),
	wire.Bind(new(BusinessStore), new(*dao.Businesses)),
	wire.Bind(new(ServiceStore), new(*dao.BusinessServices)),
	wire.Bind(new(RedeemableStore), new(*dao.Redeemables)),
	wire.Bind(new(AppointmentStore), new(*dao.Appointments)),
	wire.Bind(new(ReviewStore), new(*dao.Reviews)),
	wire.Bind(new(ReferralStore), new(*dao.Referrals)),
	wire.Bind(new(PlatformRewardStore), new(*dao.PlatformRewards)),
	wire.Bind(new(RedemptionStore), new(*dao.Redemptions)),
	wire.Bind(new(NotificationStore), new(*dao.Notifications)),
	wire.Bind(new(UnreadCounter), new(*cache.UnreadStorage)),
	wire.Bind(new(IdempotencyLock), new(*cache.IdempotentStorage)),
	wire.Bind(new(ObjectStore), new(*oss.Bucket)),
)

var ProviderSet = wire.NewSet(
	StoreSet,

	wire.Struct(new(PartyLoader), "*"),

	wire.Struct(new(RewardService), "*"),
	wire.Bind(new(IRewardService), new(*RewardService)),

	wire.Struct(new(ReferralService), "*"),
	wire.Bind(new(IReferralService), new(*ReferralService)),

	wire.Struct(new(AuthService), "*"),
	wire.Bind(new(IAuthService), new(*AuthService)),

	wire.Struct(new(UserService), "*"),
	wire.Bind(new(IUserService), new(*UserService)),

	wire.Struct(new(UploadService), "*"),
	wire.Bind(new(IUploadService), new(*UploadService)),

	wire.Struct(new(PetService), "*"),
	wire.Bind(new(IPetService), new(*PetService)),

	wire.Struct(new(BusinessService), "*"),
	wire.Bind(new(IBusinessService), new(*BusinessService)),

	wire.Struct(new(AppointmentService), "*"),
	wire.Bind(new(IAppointmentService), new(*AppointmentService)),

	wire.Struct(new(ReviewService), "*"),
	wire.Bind(new(IReviewService), new(*ReviewService)),

	wire.Struct(new(RedemptionService), "*"),
	wire.Bind(new(IRedemptionService), new(*RedemptionService)),

	wire.Struct(new(NotificationService), "*"),
	wire.Bind(new(INotificationService), new(*NotificationService)),

	wire.Struct(new(ReminderService), "*"),
	wire.Bind(new(IReminderService), new(*ReminderService)),
)
