// Package queue defines message payloads exchanged over the message broker.
package queue

// Event types carried in BookingEvent.Type.
const (
    EventBookingCreated   = "booking.created"
    EventBookingCancelled = "booking.cancelled"
)

// BookingEvent is published whenever a booking is created or
// cancelled. It carries enough context for downstream consumers to
// log or notify without querying the primary database.
type BookingEvent struct {
    Type        string  `json:"type"`
    BookingID   uint64  `json:"booking_id"`
    UserID      uint64  `json:"user_id"`
    StationID   uint64  `json:"station_id"`
    StartTime   string  `json:"start_time"`
    EndTime     string  `json:"end_time"`
    Status      string  `json:"status"`
    TotalAmount float64 `json:"total_amount"`
    OccurredAt  string  `json:"occurred_at"`
}
