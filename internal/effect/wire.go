package effect

import (
	"time"

	"Petly/config"
	"Petly/pkg/log"
	mq "Petly/pkg/rocketmq"

	"github.com/google/wire"
	"go.uber.org/zap"
)

func ProvidePolicy(cfg *config.WorkerConfig) Policy {
	return Policy{
		MaxAttempts: cfg.MaxAttempts,
		BaseDelay:   time.Duration(cfg.BaseDelayMs) * time.Millisecond,
		MaxDelay:    time.Duration(cfg.MaxDelayMs) * time.Millisecond,
	}
}

// ProvidePublisher sends intents to the broker when it is enabled and runs them
// in-process otherwise. The cleanup flushes pending work.
func ProvidePublisher(cfg *config.RocketMQConfig, exec *Executor) (Publisher, func(), error) {
	producer, err := mq.InitProducer(cfg)
	if err != nil {
		return nil, nil, err
	}
	if producer == nil {
		p := NewInlinePublisher(exec)
		return p, p.Wait, nil
	}
	return NewMQPublisher(producer, cfg.Topic), func() {
		if err := producer.Shutdown(); err != nil {
			log.L.Warn("shutdown producer", zap.Error(err))
		}
	}, nil
}

var ProviderSet = wire.NewSet(
	ProvidePolicy,
	NewExecutor,
	ProvidePublisher,
)
