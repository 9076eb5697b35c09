// Custstats - Customer Statistics Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/custstats

package events

import (
	"context"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	wmNats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	natsgo "github.com/nats-io/nats.go"

	"github.com/tomtom215/custstats/internal/metrics"
)

// CacheInvalidator is cleared whenever an import completes.
type CacheInvalidator interface {
	ClearCache()
}

// ImportListener consumes ImportCompleted events and clears the report
// cache. It implements suture.Service.
type ImportListener struct {
	url         string
	subject     string
	invalidator CacheInvalidator
	logger      watermill.LoggerAdapter

	// onEvent is called after each handled event; tests use it to observe
	// delivery.
	onEvent func(*ImportCompleted)
}

func NewImportListener(url, subject string, invalidator CacheInvalidator, logger watermill.LoggerAdapter) *ImportListener {
	if logger == nil {
		logger = NewLoggerAdapter()
	}
	return &ImportListener{
		url:         url,
		subject:     subject,
		invalidator: invalidator,
		logger:      logger,
	}
}

func (l *ImportListener) String() string {
	return "import-listener"
}

// Serve subscribes and handles events until ctx is canceled. A closed
// message channel is returned as an error so the supervisor restarts it.
func (l *ImportListener) Serve(ctx context.Context) error {
	sub, err := wmNats.NewSubscriber(wmNats.SubscriberConfig{
		URL:              l.url,
		SubscribersCount: 1,
		AckWaitTimeout:   30 * time.Second,
		CloseTimeout:     10 * time.Second,
		NatsOptions: []natsgo.Option{
			natsgo.Name("custstats-import-listener"),
			natsgo.Timeout(connectTimeout),
		},
		Unmarshaler: &wmNats.NATSMarshaler{},
		JetStream:   wmNats.JetStreamConfig{Disabled: true},
	}, l.logger)
	if err != nil {
		return fmt.Errorf("create watermill subscriber: %w", err)
	}
	defer func() {
		if cerr := sub.Close(); cerr != nil {
			l.logger.Error("Failed to close subscriber", cerr, nil)
		}
	}()

	messages, err := sub.Subscribe(ctx, l.subject)
	if err != nil {
		return fmt.Errorf("subscribe to %s: %w", l.subject, err)
	}
	l.logger.Info("Listening for import events", watermill.LogFields{"subject": l.subject})

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-messages:
			if !ok {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				return fmt.Errorf("subscription to %s closed", l.subject)
			}
			l.handle(msg)
		}
	}
}

// handle always acks: a payload that cannot be decoded will not decode on
// redelivery either.
func (l *ImportListener) handle(msg *message.Message) {
	defer msg.Ack()

	evt, err := DecodeImportCompleted(msg.Payload)
	if err != nil {
		metrics.RecordNATSParseFailure()
		l.logger.Error("Dropping malformed import event", err, watermill.LogFields{"message_uuid": msg.UUID})
		return
	}

	l.invalidator.ClearCache()
	metrics.RecordNATSConsume()
	l.logger.Info("Import completed, report cache cleared", watermill.LogFields{
		"event_id": evt.EventID,
		"run_id":   evt.RunID,
		"imported": evt.Imported,
	})

	if l.onEvent != nil {
		l.onEvent(evt)
	}
}
