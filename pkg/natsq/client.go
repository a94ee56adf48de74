package natsq

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/tobiasbuchner/StockChronicle/pkg/logger"
)

const (
	StreamIngestResults = "INGEST_RESULTS"

	SubjectIngestResults = "ingest.results"
)

type Client struct {
	nc *nats.Conn
	js jetstream.JetStream
}

func New(url string) (*Client, error) {
	log := logger.With("nats")

	opts := []nats.Option{
		nats.Name("stockchronicle"),
		nats.ReconnectWait(2 * time.Second),
		nats.MaxReconnects(-1),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Warn().Str("url", nc.ConnectedUrl()).Msg("nats reconnected")
		}),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				log.Error().Err(err).Msg("nats disconnected")
			}
		}),
	}

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("jetstream init: %w", err)
	}

	client := &Client{nc: nc, js: js}

	if err := client.ensureStreams(context.Background()); err != nil {
		nc.Close()
		return nil, fmt.Errorf("ensure streams: %w", err)
	}

	log.Info().Str("url", url).Msg("nats connected")
	return client, nil
}

func (c *Client) ensureStreams(ctx context.Context) error {
	streams := []jetstream.StreamConfig{
		{
			Name:        StreamIngestResults,
			Subjects:    []string{SubjectIngestResults},
			Retention:   jetstream.LimitsPolicy,
			MaxAge:      30 * 24 * time.Hour,
			Storage:     jetstream.FileStorage,
			Replicas:    1,
			Discard:     jetstream.DiscardOld,
			MaxMsgs:     10000,
			Description: "Per-run constituent ingest reports",
		},
	}

	for _, cfg := range streams {
		if _, err := c.js.CreateOrUpdateStream(ctx, cfg); err != nil {
			return fmt.Errorf("stream %s: %w", cfg.Name, err)
		}
	}
	return nil
}

func (c *Client) JetStream() jetstream.JetStream {
	return c.js
}

func (c *Client) Close() {
	c.nc.Close()
}
