package main

// WorkerMessage is the order-created payload sent API -> SQS -> Worker.
type WorkerMessage struct {
	OrderID       string `json:"order_id"`
	UserID        string `json:"user_id"`
	TotalCents    int64  `json:"total_cents"`
	CorrelationID string `json:"correlation_id,omitempty"`
}
