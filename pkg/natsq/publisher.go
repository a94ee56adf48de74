package natsq

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go/jetstream"
)

type Publisher struct {
	js jetstream.JetStream
}

func NewPublisher(client *Client) *Publisher {
	return &Publisher{js: client.JetStream()}
}

func (p *Publisher) Publish(ctx context.Context, subject string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	_, err = p.js.Publish(ctx, subject, payload)
	if err != nil {
		return fmt.Errorf("publish to %s: %w", subject, err)
	}

	return nil
}

func (p *Publisher) PublishIngestReport(ctx context.Context, report any) error {
	return p.Publish(ctx, SubjectIngestResults, report)
}
