package event

import "context"

// NoopPublisher is used when no broker URL is configured, e.g. in tests.
type NoopPublisher struct{}

func NewNoopPublisher() *NoopPublisher {
	return &NoopPublisher{}
}

func (p *NoopPublisher) PublishBookingCreated(ctx context.Context, event BookingCreated) error {
	return nil
}

func (p *NoopPublisher) PublishBookingCancelled(ctx context.Context, event BookingCancelled) error {
	return nil
}

func (p *NoopPublisher) Close() error {
	return nil
}
