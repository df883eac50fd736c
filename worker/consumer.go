package worker

import (
	"context"
	"errors"

	"Petly/config"
	"Petly/internal/effect"
	"Petly/pkg/log"
	mq "Petly/pkg/rocketmq"

	"github.com/apache/rocketmq-client-go/v2/consumer"
	"github.com/apache/rocketmq-client-go/v2/primitive"
	"go.uber.org/zap"
)

// Executor runs one decoded intent.
type Executor interface {
	Execute(ctx context.Context, in effect.Intent) error
}

// Consumer drains the side-effect topic into the executor.
type Consumer struct {
	Config   *config.RocketMQConfig
	Executor Executor
}

// Handle processes one batch. Malformed messages are dropped; delivery
// failures ask the broker to redeliver the batch later.
func (c *Consumer) Handle(ctx context.Context, msgs ...*primitive.MessageExt) (consumer.ConsumeResult, error) {
	for _, msg := range msgs {
		in, err := effect.Decode(msg.Body)
		if err != nil {
			log.L.Error("drop malformed intent", zap.String("msg_id", msg.MsgId), zap.Error(err))
			continue
		}
		if err := c.Executor.Execute(ctx, in); err != nil {
			if errors.Is(err, effect.ErrInvalidIntent) {
				continue
			}
			log.L.Warn("intent will be redelivered",
				zap.String("msg_id", msg.MsgId),
				zap.Int32("reconsume", msg.ReconsumeTimes),
				zap.Error(err),
			)
			return consumer.ConsumeRetryLater, nil
		}
	}
	return consumer.ConsumeSuccess, nil
}

// Run subscribes to the topic and blocks until ctx is done. With the broker
// disabled intents run inline in the publishing process and Run only waits.
func (c *Consumer) Run(ctx context.Context) error {
	if !c.Config.Enabled {
		log.L.Info("rocketmq disabled, consumer idle")
		<-ctx.Done()
		return nil
	}

	pc, err := mq.InitConsumer(c.Config)
	if err != nil {
		return err
	}
	if err := pc.Subscribe(c.Config.Topic, consumer.MessageSelector{}, c.Handle); err != nil {
		return err
	}
	if err := pc.Start(); err != nil {
		return err
	}
	log.L.Info("consumer started", zap.String("topic", c.Config.Topic), zap.String("group", c.Config.Consumer.Group))

	<-ctx.Done()
	if err := pc.Shutdown(); err != nil {
		log.L.Warn("shutdown consumer", zap.Error(err))
	}
	return nil
}
