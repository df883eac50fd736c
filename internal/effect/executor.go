package effect

import (
	"context"
	"fmt"
	"time"

	"Petly/pkg/log"

	"go.uber.org/zap"
)

type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

type NotificationSink interface {
	Deliver(ctx context.Context, key string, n *Notification) error
}

// Deduper remembers executed intent keys across processes.
type Deduper interface {
	Claim(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}

type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

func DefaultPolicy() Policy {
	return Policy{MaxAttempts: 3, BaseDelay: 200 * time.Millisecond, MaxDelay: 5 * time.Second}
}

// Backoff is the wait after the given failed attempt (1-based).
func (p Policy) Backoff(attempt int) time.Duration {
	d := p.BaseDelay
	for i := 1; i < attempt; i++ {
		d *= 2
		if p.MaxDelay > 0 && d >= p.MaxDelay {
			return p.MaxDelay
		}
	}
	return d
}

// Executor applies every intent under one retry and logging policy.
type Executor struct {
	mailer Mailer
	sink   NotificationSink
	dedupe Deduper
	policy Policy
	sleep  func(ctx context.Context, d time.Duration) error
}

func NewExecutor(mailer Mailer, sink NotificationSink, dedupe Deduper, policy Policy) *Executor {
	if policy.MaxAttempts <= 0 {
		policy.MaxAttempts = 1
	}
	return &Executor{
		mailer: mailer,
		sink:   sink,
		dedupe: dedupe,
		policy: policy,
		sleep:  sleepCtx,
	}
}

func (e *Executor) Execute(ctx context.Context, in Intent) error {
	if err := in.Validate(); err != nil {
		intentsTotal.WithLabelValues(string(in.Kind), "invalid").Inc()
		log.L.Error("drop invalid intent", zap.String("key", in.Key), zap.Error(err))
		return err
	}

	if e.dedupe != nil {
		claimed, err := e.dedupe.Claim(ctx, in.Key)
		if err != nil {
			log.L.Warn("intent dedupe unavailable", zap.String("key", in.Key), zap.Error(err))
		} else if !claimed {
			intentsTotal.WithLabelValues(string(in.Kind), "duplicate").Inc()
			return nil
		}
	}

	var err error
	for attempt := 1; attempt <= e.policy.MaxAttempts; attempt++ {
		if err = e.deliver(ctx, in); err == nil {
			intentsTotal.WithLabelValues(string(in.Kind), "ok").Inc()
			return nil
		}
		log.L.Warn("intent attempt failed",
			zap.String("kind", string(in.Kind)),
			zap.String("key", in.Key),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		if attempt == e.policy.MaxAttempts {
			break
		}
		if serr := e.sleep(ctx, e.policy.Backoff(attempt)); serr != nil {
			err = serr
			break
		}
	}

	intentsTotal.WithLabelValues(string(in.Kind), "failed").Inc()
	log.L.Error("intent failed",
		zap.String("kind", string(in.Kind)),
		zap.String("key", in.Key),
		zap.Error(err),
	)
	if e.dedupe != nil {
		if rerr := e.dedupe.Release(context.WithoutCancel(ctx), in.Key); rerr != nil {
			log.L.Warn("release intent key", zap.String("key", in.Key), zap.Error(rerr))
		}
	}
	return fmt.Errorf("effect %s %s: %w", in.Kind, in.Key, err)
}

func (e *Executor) deliver(ctx context.Context, in Intent) error {
	switch in.Kind {
	case KindEmail:
		return e.mailer.Send(ctx, in.Email.To, in.Email.Subject, in.Email.Body)
	case KindNotification:
		return e.sink.Deliver(ctx, in.Key, in.Notification)
	}
	return ErrInvalidIntent
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
