package effect

import (
	"context"
	"sync"
	"time"

	mq "Petly/pkg/rocketmq"

	"github.com/apache/rocketmq-client-go/v2"
)

// Publisher hands intents off so that callers never perform side effects inline.
type Publisher interface {
	Publish(ctx context.Context, intents ...Intent) error
}

// InlinePublisher runs intents on a background goroutine in this process.
type InlinePublisher struct {
	exec    *Executor
	timeout time.Duration
	wg      sync.WaitGroup
}

func NewInlinePublisher(exec *Executor) *InlinePublisher {
	return &InlinePublisher{exec: exec, timeout: 2 * time.Minute}
}

func (p *InlinePublisher) Publish(ctx context.Context, intents ...Intent) error {
	if len(intents) == 0 {
		return nil
	}
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		c, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
		defer cancel()
		for _, in := range intents {
			_ = p.exec.Execute(c, in)
		}
	}()
	return nil
}

// Wait blocks until every published batch has finished.
func (p *InlinePublisher) Wait() {
	p.wg.Wait()
}

// MQPublisher sends each intent to the side-effect topic for the worker.
type MQPublisher struct {
	producer rocketmq.Producer
	topic    string
}

func NewMQPublisher(producer rocketmq.Producer, topic string) *MQPublisher {
	return &MQPublisher{producer: producer, topic: topic}
}

func (p *MQPublisher) Publish(ctx context.Context, intents ...Intent) error {
	for _, in := range intents {
		if err := in.Validate(); err != nil {
			return err
		}
		body, err := Encode(in)
		if err != nil {
			return err
		}
		if err := mq.SendSync(ctx, p.producer, p.topic, string(in.Kind), in.Recipient(), body); err != nil {
			intentsTotal.WithLabelValues(string(in.Kind), "publish_failed").Inc()
			return err
		}
	}
	return nil
}
