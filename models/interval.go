package models

import "time"

// OwnerKind identifies which shared resource an interval occupies.
type OwnerKind string

const (
	// OwnerShop marks appointment bookings; they contend for the shop's
	// service bays as a single shared resource.
	OwnerShop OwnerKind = "shop"
	// OwnerEmployee marks time-tracking entries owned by one employee.
	OwnerEmployee OwnerKind = "employee"
)

// IntervalStatus is the lifecycle state of an interval.
type IntervalStatus string

const (
	IntervalActive    IntervalStatus = "active"
	IntervalCompleted IntervalStatus = "completed"
	IntervalCancelled IntervalStatus = "cancelled"
)

// Interval is a half-open time range [Start, End) with an owner. It models
// both shop appointment bookings and employee time-log entries. End is nil
// while a timer is still running.
type Interval struct {
	ID          string         `bson:"id" json:"id"`
	OwnerKind   OwnerKind      `bson:"ownerKind" json:"ownerKind"`
	OwnerID     string         `bson:"ownerId,omitempty" json:"ownerId,omitempty"` // employee id; empty for shop intervals
	Start       time.Time      `bson:"start" json:"start"`
	End         *time.Time     `bson:"end,omitempty" json:"end,omitempty"`
	Status      IntervalStatus `bson:"status" json:"status"`
	ServiceType string         `bson:"serviceType,omitempty" json:"serviceType,omitempty"`
	VehicleID   string         `bson:"vehicleId,omitempty" json:"vehicleId,omitempty"`
	Note        string         `bson:"note,omitempty" json:"note,omitempty"`
	CreatedAt   time.Time      `bson:"createdAt" json:"createdAt"`
}

// Open reports whether the interval has no end yet (a running timer).
func (iv Interval) Open() bool {
	return iv.End == nil
}

// Blocking reports whether the interval participates in conflict checks.
// Cancelled intervals never block; completed ones keep blocking with their
// originally estimated window.
func (iv Interval) Blocking() bool {
	return iv.Status != IntervalCancelled
}
