package domain

import (
	"context"
	"errors"
)

// ScheduleHours is the fixed ordered set of bookable pickup hours.
// Availability is always reported in this order, not alphabetically.
var ScheduleHours = []string{
	"09:00", "10:00", "11:00", "12:00",
	"13:00", "14:00", "15:00", "16:00", "17:00",
}

// DefaultSlotCapacity is the booking capacity assigned to an hour slot
// the first time it is touched.
const DefaultSlotCapacity = 20

var (
	// ErrInvalidDateFormat is returned when a date is not a valid YYYY-MM-DD calendar date.
	ErrInvalidDateFormat = errors.New("date must be a valid YYYY-MM-DD date")
	// ErrInvalidHour is returned when an hour is not one of ScheduleHours.
	ErrInvalidHour = errors.New("hour is not a bookable schedule hour")
	// ErrInvalidQuantity is returned when a booking quantity is not a positive integer.
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
	// ErrSoldOut is returned when a booking would push a slot past its capacity.
	// It is an expected business outcome, not a fault.
	ErrSoldOut = errors.New("slot is sold out")
	// ErrUnavailable is returned when slot storage could not complete the
	// operation in time. The caller may retry the whole call.
	ErrUnavailable = errors.New("slot storage temporarily unavailable")
)

// HourSlot is one capacity-limited booking window for a calendar date.
// Invariant: 0 <= Booked <= Capacity. Booked only ever grows; there is no
// release path.
type HourSlot struct {
	Date     string `json:"date"`
	Hour     string `json:"hour"`
	Capacity int    `json:"capacity"`
	Booked   int    `json:"booked"`
}

// Remaining returns how many units can still be booked, never negative.
func (s *HourSlot) Remaining() int {
	if s.Booked >= s.Capacity {
		return 0
	}
	return s.Capacity - s.Booked
}

// HourAvailability is one entry of an availability listing.
// swagger:model HourAvailability
type HourAvailability struct {
	Hour      string `json:"hour"`
	Remaining int    `json:"remaining"`
}

// BookingResult reports a confirmed reservation.
// swagger:model BookingResult
type BookingResult struct {
	Confirmed bool   `json:"confirmed"`
	Date      string `json:"date"`
	Hour      string `json:"hour"`
	Quantity  int    `json:"quantity"`
	Remaining int    `json:"remaining"`
}

// SlotRepository defines storage operations for hour slots. Rows are created
// lazily with default capacity and never deleted.
type SlotRepository interface {
	// EnsureDay materializes a default row for every schedule hour of the
	// date that does not exist yet. Idempotent; never touches Booked.
	EnsureDay(ctx context.Context, date string) error
	// ListByDate returns the existing slots for a date keyed by hour.
	ListByDate(ctx context.Context, date string) (map[string]*HourSlot, error)
	// Get returns the slot for one (date, hour) cell, or ErrNotFound if the
	// row has not been materialized.
	Get(ctx context.Context, date, hour string) (*HourSlot, error)
	// Book atomically increments Booked by quantity if and only if the
	// result does not exceed Capacity, materializing the row with default
	// capacity when absent. Returns the committed slot state, ErrSoldOut
	// when the increment would exceed capacity, or ErrUnavailable on
	// storage timeout/contention. The check and increment must be a single
	// indivisible step with respect to all other bookers of the same cell;
	// distinct cells must not block each other.
	Book(ctx context.Context, date, hour string, quantity int) (*HourSlot, error)
}

// SlotService is the slot capacity manager: availability queries plus
// capacity-enforced booking.
type SlotService interface {
	// GetAvailability returns remaining capacity for every schedule hour of
	// the date, in schedule order. Unknown dates report full capacity.
	GetAvailability(ctx context.Context, date string) ([]HourAvailability, error)
	// BookSlot reserves quantity units of the (date, hour) cell. On
	// ErrSoldOut the returned result is non-nil and carries the current
	// remaining capacity for the caller's retry UX.
	BookSlot(ctx context.Context, date, hour string, quantity int) (*BookingResult, error)
}
