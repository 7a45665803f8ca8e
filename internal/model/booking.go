package model

import "time"

// Booking statuses. A booking starts as Pending, moves forward to
// Confirmed and Completed, and may be cancelled from Pending or
// Confirmed. Completed and Cancelled are terminal.
const (
    StatusPending   = "Pending"
    StatusConfirmed = "Confirmed"
    StatusCompleted = "Completed"
    StatusCancelled = "Cancelled"
)

// Booking records a reservation of a charging station for a time
// interval. Cancellation is a status change, not a row delete; only
// the administrative delete path removes the record.
//
// Fields:
//  ID          – primary key identifier.
//  UserID      – user who owns the booking.
//  StationID   – station being reserved.
//  StartTime   – start of the reserved interval (UTC).
//  EndTime     – end of the reserved interval (UTC), strictly after StartTime.
//  Status      – one of the Status* constants above.
//  TotalAmount – station price per hour multiplied by the interval duration.
//  CreatedAt   – creation timestamp; immutable once set, drives the
//                12-hour modification window.
//  UpdatedAt   – last update timestamp.
type Booking struct {
    ID          uint64    `json:"id"`          // bookings.id
    UserID      uint64    `json:"userId"`      // bookings.user_id
    StationID   uint64    `json:"stationId"`   // bookings.station_id
    StartTime   time.Time `json:"startTime"`   // bookings.start_time
    EndTime     time.Time `json:"endTime"`     // bookings.end_time
    Status      string    `json:"status"`      // bookings.status
    TotalAmount float64   `json:"totalAmount"` // bookings.total_amount
    CreatedAt   time.Time `json:"createdAt"`   // bookings.created_at
    UpdatedAt   time.Time `json:"updatedAt"`   // bookings.updated_at
}
