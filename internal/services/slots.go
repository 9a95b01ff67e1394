package services

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"pacsbooking/internal/domain"
)

// slotDateRegexp pins the date syntax to YYYY-MM-DD before the calendar
// check; time.Parse alone would accept single-digit months and days.
var slotDateRegexp = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

const defaultSlotOpTimeout = 5 * time.Second

type slotService struct {
	slotRepo  domain.SlotRepository
	opTimeout time.Duration
}

// NewSlotService creates the slot capacity manager backed by the given
// repository. opTimeout bounds each storage operation; past it the call
// fails with domain.ErrUnavailable. Pass 0 for the default.
func NewSlotService(slotRepo domain.SlotRepository, opTimeout time.Duration) domain.SlotService {
	if opTimeout <= 0 {
		opTimeout = defaultSlotOpTimeout
	}
	return &slotService{slotRepo: slotRepo, opTimeout: opTimeout}
}

func validSlotDate(date string) bool {
	if !slotDateRegexp.MatchString(date) {
		return false
	}
	_, err := time.Parse("2006-01-02", date)
	return err == nil
}

func validSlotHour(hour string) bool {
	for _, h := range domain.ScheduleHours {
		if h == hour {
			return true
		}
	}
	return false
}

func (s *slotService) GetAvailability(ctx context.Context, date string) ([]domain.HourAvailability, error) {
	if !validSlotDate(date) {
		return nil, domain.ErrInvalidDateFormat
	}

	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	// Materialize missing rows with defaults so repeated reads of an
	// untouched date are indistinguishable. Never changes booked counts.
	if err := s.slotRepo.EnsureDay(ctx, date); err != nil {
		return nil, fmt.Errorf("ensure day: %w", err)
	}
	slots, err := s.slotRepo.ListByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}

	availability := make([]domain.HourAvailability, 0, len(domain.ScheduleHours))
	for _, hour := range domain.ScheduleHours {
		remaining := domain.DefaultSlotCapacity
		if slot, ok := slots[hour]; ok {
			remaining = slot.Remaining()
		}
		availability = append(availability, domain.HourAvailability{Hour: hour, Remaining: remaining})
	}
	return availability, nil
}

func (s *slotService) BookSlot(ctx context.Context, date, hour string, quantity int) (*domain.BookingResult, error) {
	// Input errors are rejected before any storage access.
	if !validSlotDate(date) {
		return nil, domain.ErrInvalidDateFormat
	}
	if !validSlotHour(hour) {
		return nil, domain.ErrInvalidHour
	}
	if quantity < 1 {
		return nil, domain.ErrInvalidQuantity
	}

	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	slot, err := s.slotRepo.Book(ctx, date, hour, quantity)
	if err == domain.ErrSoldOut {
		return s.soldOutResult(ctx, date, hour, quantity)
	}
	if err != nil {
		return nil, fmt.Errorf("book slot %s %s: %w", date, hour, err)
	}
	return &domain.BookingResult{
		Confirmed: true,
		Date:      date,
		Hour:      hour,
		Quantity:  quantity,
		Remaining: slot.Remaining(),
	}, nil
}

// soldOutResult reports the current remaining capacity alongside ErrSoldOut
// so clients can refresh their slot picker without a second round-trip. The
// remaining value is informational; other bookers may change it immediately.
func (s *slotService) soldOutResult(ctx context.Context, date, hour string, quantity int) (*domain.BookingResult, error) {
	remaining := domain.DefaultSlotCapacity
	slot, err := s.slotRepo.Get(ctx, date, hour)
	if err == nil {
		remaining = slot.Remaining()
	} else if err != domain.ErrNotFound {
		return nil, fmt.Errorf("read slot after sold out: %w", err)
	}
	return &domain.BookingResult{
		Confirmed: false,
		Date:      date,
		Hour:      hour,
		Quantity:  quantity,
		Remaining: remaining,
	}, domain.ErrSoldOut
}
