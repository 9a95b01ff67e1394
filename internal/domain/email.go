package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// ReceiptEmailData holds data for the order receipt email.
type ReceiptEmailData struct {
	Email string
	Name  string
	Order *Order
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendOrderReceipt(ctx context.Context, data *ReceiptEmailData) error
}
