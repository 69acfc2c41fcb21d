package enums

// OutboxEventType names the domain events emitted through the outbox.
type OutboxEventType string

const (
	OutboxEventOrderCreated       OutboxEventType = "order.created"
	OutboxEventOrderStatusChanged OutboxEventType = "order.status_changed"
)

// OutboxAggregateType names the aggregate an outbox event belongs to.
type OutboxAggregateType string

const (
	OutboxAggregateOrder OutboxAggregateType = "order"
)
