package services

import (
	"encoding/json"
	"log"

	"loja/pkg/rabbitmq"
)

// EventPublisher is the slice of the message broker the services need.
// Satisfied by *rabbitmq.Client; a nil publisher disables events entirely.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// Routing keys published on the events exchange.
const (
	EventOrderCreated       = "order.created"
	EventOrderItemAdded     = "order.item_added"
	EventOrderItemRemoved   = "order.item_removed"
	EventOrderConfirmed     = "order.confirmed"
	EventOrderCancelled     = "order.cancelled"
	EventOrderStatusUpdated = "order.status_updated"
	EventProductCreated     = "product.created"
	EventProductStock       = "product.stock_changed"
)

// publishEvent marshals the payload and publishes it best-effort: a broker
// failure is logged, never surfaced to the caller, so event delivery can
// never fail a committed operation.
func publishEvent(mq EventPublisher, routingKey string, payload interface{}) {
	if mq == nil {
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", routingKey, err)
		return
	}
	if err := mq.Publish(rabbitmq.EventsExchange, routingKey, body); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", routingKey, err)
	}
}
