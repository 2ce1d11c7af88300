package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/rs/zerolog"

	"github.com/BlackCoffeeCode/SneakerMarketWebApp/internal/aws"
	"github.com/BlackCoffeeCode/SneakerMarketWebApp/internal/orders"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Str("component", "fulfillment-worker").Logger()

// Processor handles order-created SQS messages: it verifies the order,
// records fulfillment metrics and logs the acknowledgment. It never advances
// order status; that is an admin action on the API.
type Processor struct {
	orderStore *orders.Store
	metrics    *aws.Metrics
}

// NewProcessor creates a worker processor with AWS clients injected.
func NewProcessor(clients *aws.AWSClients, ordersTable string) *Processor {
	return &Processor{
		orderStore: orders.NewStore(clients.DynamoDB, ordersTable),
		metrics:    aws.NewMetrics(clients.CloudWatch),
	}
}

// Handle receives an SQS batch event and processes each message.
func (p *Processor) Handle(ctx context.Context, ev events.SQSEvent) error {
	for _, rec := range ev.Records {
		if err := p.processMessage(ctx, rec); err != nil {
			// Return error: Lambda will retry. If failed too many times, message goes to DLQ.
			logger.Error().Err(err).Msg("worker error")
			return err
		}
	}
	return nil
}

func (p *Processor) processMessage(ctx context.Context, rec events.SQSMessage) error {
	var msg WorkerMessage
	if err := json.Unmarshal([]byte(rec.Body), &msg); err != nil {
		return fmt.Errorf("invalid message body: %w", err)
	}

	logger.Info().
		Str("order_id", msg.OrderID).
		Str("user_id", msg.UserID).
		Str("correlation_id", msg.CorrelationID).
		Msg("received order event")

	order, err := p.orderStore.Get(ctx, msg.OrderID)
	if err != nil {
		return fmt.Errorf("failed to fetch order: %w", err)
	}
	if order == nil {
		// Should never happen — DLQ if it does
		return fmt.Errorf("order not found: %s", msg.OrderID)
	}

	if p.metrics != nil {
		if err := p.metrics.PutCount(ctx, "OrdersAcknowledged", 1, nil); err != nil {
			logger.Warn().Err(err).Msg("metric emit failed")
		}
		if err := p.metrics.PutCount(ctx, "OrderRevenueCents", float64(order.TotalCents), nil); err != nil {
			logger.Warn().Err(err).Msg("metric emit failed")
		}
	}

	logger.Info().
		Str("order_id", order.OrderID).
		Int64("total_cents", order.TotalCents).
		Str("status", order.Status).
		Msg("order queued for fulfillment")
	return nil
}
