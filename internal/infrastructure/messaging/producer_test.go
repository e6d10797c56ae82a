package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appzeto/food-admin/internal/core/domain"
)

func testEvent() domain.TrackingEvent {
	return domain.TrackingEvent{
		ID:         "2b1f0c1e-7d1a-4a8e-9d7e-0c6a6f1b2a11",
		Type:       domain.EventOrderStatusChanged,
		Collection: domain.CollectionActiveOrders,
		EntityID:   "o1",
		OccurredAt: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC),
		Data:       domain.Record{"status": "picked_up"},
	}
}

func newMockProducer(t *testing.T) *mocks.SyncProducer {
	cfg := mocks.NewTestConfig()
	cfg.Producer.Return.Successes = true
	return mocks.NewSyncProducer(t, cfg)
}

func TestProducer_Publish(t *testing.T) {
	mock := newMockProducer(t)
	mock.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		if msg.Topic != "tracking-events" {
			return errors.New("unexpected topic " + msg.Topic)
		}
		key, _ := msg.Key.Encode()
		if string(key) != "active_orders/o1" {
			return errors.New("unexpected key " + string(key))
		}
		if len(msg.Headers) == 0 || string(msg.Headers[0].Value) != "order.status_changed" {
			return errors.New("missing event_type header")
		}

		raw, _ := msg.Value.Encode()
		var body map[string]any
		if err := json.Unmarshal(raw, &body); err != nil {
			return err
		}
		if body["entity_id"] != "o1" || body["type"] != "order.status_changed" {
			return errors.New("unexpected body " + string(raw))
		}
		return nil
	})

	p := NewProducerWith(mock, "tracking-events", zerolog.Nop())
	require.NoError(t, p.Publish(context.Background(), testEvent()))
	require.NoError(t, p.Close())
}

func TestProducer_PublishFailure(t *testing.T) {
	mock := newMockProducer(t)
	mock.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	p := NewProducerWith(mock, "tracking-events", zerolog.Nop())
	err := p.Publish(context.Background(), testEvent())
	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.NoError(t, p.Close())
}

func TestLogPublisher(t *testing.T) {
	p := NewLogPublisher(zerolog.Nop())
	assert.NoError(t, p.Publish(context.Background(), testEvent()))
}
