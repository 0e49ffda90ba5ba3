package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"agentcrm_site/internal/config"
	"agentcrm_site/internal/leadform"
)

// ErrSimulatedFailure is returned by a SimulatedDeliverer configured to fail
var ErrSimulatedFailure = errors.New("simulated delivery failure")

// SimulatedDeliverer stands in for a network call: it waits Delay and then
// succeeds, or fails when Fail is set.
type SimulatedDeliverer struct {
	Delay time.Duration
	Fail  bool
}

func (d SimulatedDeliverer) Deliver(ctx context.Context, _ leadform.Inquiry) error {
	timer := time.NewTimer(d.Delay)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-ctx.Done():
		return ctx.Err()
	}

	if d.Fail {
		return ErrSimulatedFailure
	}
	return nil
}

// FanOutDeliverer delivers to every target concurrently and fails if any
// target fails.
type FanOutDeliverer struct {
	Targets []leadform.Deliverer
}

func (d *FanOutDeliverer) Deliver(ctx context.Context, inquiry leadform.Inquiry) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, target := range d.Targets {
		target := target
		g.Go(func() error {
			return target.Deliver(ctx, inquiry)
		})
	}
	return g.Wait()
}

// LoggingDeliverer records the outcome of every delivery
type LoggingDeliverer struct {
	Next   leadform.Deliverer
	Logger *zap.Logger
}

func (d *LoggingDeliverer) Deliver(ctx context.Context, inquiry leadform.Inquiry) error {
	start := time.Now()
	err := d.Next.Deliver(ctx, inquiry)

	fields := []zap.Field{
		zap.String("reference", inquiry.Reference),
		zap.String("form", string(inquiry.Kind)),
		zap.Duration("took", time.Since(start)),
	}
	if err != nil {
		d.Logger.Warn("Inquiry delivery failed", append(fields, zap.Error(err))...)
		return err
	}
	d.Logger.Info("Inquiry delivered", fields...)
	return nil
}

// NewDeliverer builds the delivery collaborator selected by DELIVERY_MODE
func NewDeliverer(cfg config.Config) (leadform.Deliverer, error) {
	email := func() leadform.Deliverer {
		return &EmailDeliverer{Email: NewEmailService(cfg.SMTP)}
	}
	whatsapp := func() leadform.Deliverer {
		return &WhatsAppDeliverer{Waha: NewWahaService(cfg.Waha), ChatID: cfg.Waha.NotifyChat}
	}

	switch cfg.DeliveryMode {
	case config.DeliverySimulated, "":
		return SimulatedDeliverer{Delay: cfg.SimulatedDelay, Fail: cfg.SimulateDeliveryFailure}, nil
	case config.DeliveryEmail:
		return email(), nil
	case config.DeliveryWhatsApp:
		return whatsapp(), nil
	case config.DeliveryAll:
		return &FanOutDeliverer{Targets: []leadform.Deliverer{email(), whatsapp()}}, nil
	default:
		return nil, fmt.Errorf("unknown DELIVERY_MODE %q", cfg.DeliveryMode)
	}
}
