package cache

import (
	"Petly/config"
	"time"

	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
)

func ProvideIntentDedupe(rds *redis.Client, cfg *config.WorkerConfig) *IntentDedupe {
	return NewIntentDedupe(rds, time.Duration(cfg.DedupeTTLHours)*time.Hour)
}

var ProviderSet = wire.NewSet(
	NewUnreadStorage,
	NewIdempotentStorage,
	ProvideIntentDedupe,
)
