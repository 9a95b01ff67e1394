package services

import (
	"context"
	"fmt"
	"strings"

	"pacsbooking/internal/domain"
)

type emailService struct {
	mailer domain.Mailer
}

// NewEmailService creates an EmailService that sends through the given mailer.
func NewEmailService(mailer domain.Mailer) domain.EmailService {
	return &emailService{mailer: mailer}
}

func (s *emailService) SendOrderReceipt(ctx context.Context, data *domain.ReceiptEmailData) error {
	subject := fmt.Sprintf("Pickup receipt - token %s", data.Order.Token)
	text := renderReceiptText(data.Order)
	if err := s.mailer.Send(data.Email, subject, "", text); err != nil {
		return fmt.Errorf("send receipt: %w", err)
	}
	return nil
}

// renderReceiptText produces the plain-text receipt the farmer presents at
// the service center.
func renderReceiptText(order *domain.Order) string {
	var b strings.Builder
	line := strings.Repeat("-", 32)
	b.WriteString("Farmer Service Center Receipt\n")
	b.WriteString(line + "\n")
	fmt.Fprintf(&b, "Order ID: %s\n", order.ID)
	fmt.Fprintf(&b, "Token: %s\n", order.Token)
	fmt.Fprintf(&b, "Date: %s %s\n", order.Date, order.Hour)
	if order.CenterName != "" {
		fmt.Fprintf(&b, "Center: %s\n", order.CenterName)
	}
	b.WriteString("\nItems:\n")
	for _, item := range order.Items {
		fmt.Fprintf(&b, "- %s x %d @ ₹%.2f\n", item.Name, item.Quantity, item.Price)
	}
	fmt.Fprintf(&b, "\nTotal: ₹%.2f\n", order.Total)
	fmt.Fprintf(&b, "Status: %s\n", order.Status)
	b.WriteString(line + "\n")
	b.WriteString("Please present this token at the center.\n")
	return b.String()
}
