package model

import "time"

// Station is a chargeable location with an hourly price. The booking
// core reads stations only for conflict scoping and price lookups.
//
// Fields:
//  ID           – primary key identifier.
//  Name         – display name of the station.
//  Location     – human-readable address.
//  OperatorId   – user who registered the station.
//  PricePerHour – hourly charging price.
//  IsActive     – whether the station accepts bookings.
//  CreatedAt    – creation timestamp.
type Station struct {
    ID           uint64    `json:"id"`           // stations.id
    Name         string    `json:"name"`         // stations.name
    Location     string    `json:"location"`     // stations.location
    OperatorID   uint64    `json:"operatorId"`   // stations.operator_id
    PricePerHour float64   `json:"pricePerHour"` // stations.price_per_hour
    IsActive     bool      `json:"isActive"`     // stations.is_active
    CreatedAt    time.Time `json:"createdAt"`    // stations.created_at
}
