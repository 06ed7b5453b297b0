package worker

import (
	"context"
	"errors"
	"log"

	"bookstore-service/internal/apperr"
	"bookstore-service/internal/broker"
	"bookstore-service/internal/models"
	"bookstore-service/internal/service"
)

// PaymentCallbackWorker consumes payment-provider callback events and drives
// the order ledger's payment transitions. The reported status is trusted;
// invalid or unknown callbacks are logged and skipped so they cannot wedge
// the consumer group.
type PaymentCallbackWorker struct {
	consumer     *broker.Consumer
	eventHandler *broker.EventHandler
	orders       *service.OrderService
}

// NewPaymentCallbackWorker creates a new payment callback worker
func NewPaymentCallbackWorker(consumer *broker.Consumer, orders *service.OrderService) *PaymentCallbackWorker {
	w := &PaymentCallbackWorker{
		consumer: consumer,
		orders:   orders,
	}

	eventHandler := broker.NewEventHandler()
	eventHandler.OnPaymentCallback(w.handlePaymentCallback)
	w.eventHandler = eventHandler

	return w
}

// Start starts the worker
func (w *PaymentCallbackWorker) Start(ctx context.Context) error {
	log.Println("Starting payment callback worker...")
	return w.consumer.StartConsuming(ctx, w.eventHandler.HandleMessage)
}

// Stop stops the worker
func (w *PaymentCallbackWorker) Stop() error {
	log.Println("Stopping payment callback worker...")
	return w.consumer.Close()
}

func (w *PaymentCallbackWorker) handlePaymentCallback(ctx context.Context, event *models.PaymentCallbackEvent) error {
	_, err := w.orders.UpdatePayment(ctx, event.OrderID, event.PaymentStatus, event.PaymentMethod)
	if err == nil {
		return nil
	}

	var notFound *apperr.NotFoundError
	var invalid *apperr.ValidationError
	if errors.As(err, &notFound) || errors.As(err, &invalid) {
		log.Printf("Dropping payment callback %s for order %d: %v", event.EventID, event.OrderID, err)
		return nil
	}
	return err
}
