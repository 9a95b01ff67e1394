package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/google/uuid"
	"pacsbooking/internal/domain"
)

type orderService struct {
	orderRepo    domain.OrderRepository
	userRepo     domain.UserRepository
	slotService  domain.SlotService
	emailService domain.EmailService
	logger       *slog.Logger
}

// NewOrderService creates an OrderService. Placing an order reserves slot
// capacity through the slot service before any order row is written, so a
// sold-out slot never produces an order.
func NewOrderService(
	orderRepo domain.OrderRepository,
	userRepo domain.UserRepository,
	slotService domain.SlotService,
	emailService domain.EmailService,
	logger *slog.Logger,
) domain.OrderService {
	return &orderService{
		orderRepo:    orderRepo,
		userRepo:     userRepo,
		slotService:  slotService,
		emailService: emailService,
		logger:       logger,
	}
}

func (s *orderService) PlaceOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if len(order.Items) == 0 {
		return nil, domain.ErrEmptyOrder
	}
	switch order.Kind {
	case domain.OrderKindFertilizer, domain.OrderKindSeed, domain.OrderKindMixed:
	default:
		order.Kind = domain.OrderKindMixed
	}

	quantity := 0
	total := 0.0
	for _, item := range order.Items {
		if item.Quantity < 1 {
			return nil, fmt.Errorf("%w: item %q", domain.ErrInvalidQuantity, item.Name)
		}
		quantity += item.Quantity
		total += float64(item.Quantity) * item.Price
	}
	order.Total = total

	// One pickup visit consumes one slot unit regardless of item count.
	if _, err := s.slotService.BookSlot(ctx, order.Date, order.Hour, 1); err != nil {
		return nil, err
	}

	token, err := generateOrderToken()
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	order.ID = uuid.NewString()
	order.Token = token
	order.Status = domain.OrderStatusScheduled
	order.CreatedAt = time.Now()

	if err := s.orderRepo.Create(ctx, order); err != nil {
		// The slot unit stays consumed; there is no release path. The
		// farmer can retry in the same hour while capacity remains.
		return nil, fmt.Errorf("create order: %w", err)
	}

	s.sendReceipt(ctx, order)
	return order, nil
}

func (s *orderService) ListMyOrders(ctx context.Context, userID string, p domain.PaginationParams) ([]*domain.Order, int, error) {
	orders, total, err := s.orderRepo.ListByUserID(ctx, userID, p)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	return orders, total, nil
}

// sendReceipt emails the order receipt when the user has an email on file.
// Best-effort: a mail failure never fails the order.
func (s *orderService) sendReceipt(ctx context.Context, order *domain.Order) {
	user, err := s.userRepo.GetByID(ctx, order.UserID)
	if err != nil || user.Email == "" {
		return
	}
	data := &domain.ReceiptEmailData{Email: user.Email, Name: user.Name, Order: order}
	if err := s.emailService.SendOrderReceipt(ctx, data); err != nil {
		s.logger.WarnContext(ctx, "receipt email failed", "order_id", order.ID, "err", err)
	}
}

// generateOrderToken returns a 6-digit numeric token, easy to read out at
// the service counter.
func generateOrderToken() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
