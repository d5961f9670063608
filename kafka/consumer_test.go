package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/IBM/sarama"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/catalog-service/internal/product/domain"
	"github.com/tair/catalog-service/internal/product/repository"
	"github.com/tair/catalog-service/internal/product/usecase/command"
)

func purchaseMessage(t *testing.T, event ProductPurchasedEvent, headers ...*sarama.RecordHeader) *sarama.ConsumerMessage {
	t.Helper()
	payload, err := json.Marshal(event)
	require.NoError(t, err)
	return &sarama.ConsumerMessage{
		Topic:   TopicProductPurchased,
		Value:   payload,
		Headers: headers,
	}
}

func eventTypeHeader(eventType string) *sarama.RecordHeader {
	return &sarama.RecordHeader{Key: []byte("event_type"), Value: []byte(eventType)}
}

func TestDispatchRecordsSale(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryProductRepository()
	product := &domain.Product{Name: "Lamp", UserID: 7, CategoryID: 1, Price: 100, Status: domain.StatusApproved}
	require.NoError(t, repo.Create(ctx, product))

	consumer := newConsumer(nil, "catalog-service", []string{TopicProductPurchased})
	consumer.RegisterHandler(EventTypeProductPurchased, ProductPurchasedHandler(command.NewRecordSaleHandler(repo)))

	msg := purchaseMessage(t, ProductPurchasedEvent{EventID: "e-1", ProductID: product.ID, Quantity: 3},
		eventTypeHeader(EventTypeProductPurchased))
	require.NoError(t, consumer.Dispatch(ctx, msg))
	require.NoError(t, consumer.Dispatch(ctx, msg))

	stored, err := repo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, stored.SalesCount)
}

func TestDispatchRejectsUnroutableMessages(t *testing.T) {
	consumer := newConsumer(nil, "catalog-service", nil)
	ctx := context.Background()

	err := consumer.Dispatch(ctx, purchaseMessage(t, ProductPurchasedEvent{ProductID: 1, Quantity: 1}))
	assert.ErrorIs(t, err, ErrMissingEventType)

	err = consumer.Dispatch(ctx, purchaseMessage(t, ProductPurchasedEvent{ProductID: 1, Quantity: 1},
		eventTypeHeader("product.refunded")))
	assert.ErrorIs(t, err, ErrNoHandler)
}

type failingRecorder struct{}

func (failingRecorder) Handle(context.Context, command.RecordSaleCommand) error {
	return errors.New("store down")
}

func TestProductPurchasedHandlerErrors(t *testing.T) {
	ctx := context.Background()

	err := ProductPurchasedHandler(failingRecorder{})(ctx, []byte("{not json"))
	assert.ErrorContains(t, err, "failed to unmarshal")

	err = ProductPurchasedHandler(failingRecorder{})(ctx, []byte(`{"product_id":1,"quantity":1}`))
	assert.EqualError(t, err, "store down")

	repo := repository.NewMemoryProductRepository()
	err = ProductPurchasedHandler(command.NewRecordSaleHandler(repo))(ctx, []byte(`{"product_id":42,"quantity":1}`))
	assert.True(t, domain.IsNotFoundError(err))
}
