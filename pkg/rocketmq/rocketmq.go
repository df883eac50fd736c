package rocketmq

import (
	"Petly/config"
	"Petly/pkg/log"
	"context"
	"fmt"

	"github.com/apache/rocketmq-client-go/v2"
	"github.com/apache/rocketmq-client-go/v2/consumer"
	"github.com/apache/rocketmq-client-go/v2/primitive"
	"github.com/apache/rocketmq-client-go/v2/producer"
	"github.com/apache/rocketmq-client-go/v2/rlog"
	"go.uber.org/zap"
)

func init() {
	rlog.SetLogLevel("error")
}

// InitProducer starts a producer, or returns nil when the broker is disabled.
func InitProducer(cfg *config.RocketMQConfig) (rocketmq.Producer, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	retry := cfg.Producer.Retry
	if retry <= 0 {
		retry = 2
	}
	p, err := rocketmq.NewProducer(
		producer.WithNsResolver(primitive.NewPassthroughResolver(cfg.NameServer)),
		producer.WithGroupName(cfg.Producer.Group),
		producer.WithRetry(retry),
	)
	if err != nil {
		return nil, fmt.Errorf("new producer: %w", err)
	}
	if err = p.Start(); err != nil {
		return nil, fmt.Errorf("start producer: %w", err)
	}
	log.L.Info("init producer success", zap.Strings("nameserver", cfg.NameServer))
	return p, nil
}

func InitConsumer(cfg *config.RocketMQConfig) (rocketmq.PushConsumer, error) {
	c, err := rocketmq.NewPushConsumer(
		consumer.WithNsResolver(primitive.NewPassthroughResolver(cfg.NameServer)),
		consumer.WithGroupName(cfg.Consumer.Group),
		consumer.WithConsumeFromWhere(consumer.ConsumeFromLastOffset),
	)
	if err != nil {
		return nil, fmt.Errorf("new push consumer: %w", err)
	}
	return c, nil
}

// SendSync publishes one message keyed for ordering by shardingKey.
func SendSync(ctx context.Context, p rocketmq.Producer, topic, tag, shardingKey string, body []byte) error {
	msg := primitive.NewMessage(topic, body)
	if tag != "" {
		msg.WithTag(tag)
	}
	if shardingKey != "" {
		msg.WithShardingKey(shardingKey)
		msg.WithKeys([]string{shardingKey})
	}

	res, err := p.SendSync(ctx, msg)
	if err != nil {
		return err
	}
	if res.Status != primitive.SendOK {
		return fmt.Errorf("send message status %d", res.Status)
	}
	log.L.Debug("send message success", zap.String("msg_id", res.MsgID), zap.String("topic", topic))
	return nil
}
