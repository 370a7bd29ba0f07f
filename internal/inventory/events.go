// Package inventory implements the product and supplier services and the
// purchase-order workflow on top of the persistence ports.
package inventory

// EventBus topics published by the order workflow. Subscribers are wired at
// application init.
const (
	TopicOrderCreated       = "order.created"
	TopicOrderStatusChanged = "order.status.changed"
	TopicOrderProcessed     = "order.processed"
)
