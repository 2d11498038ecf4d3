// Package mailer sends purchase-order emails to vendors over SMTP.
package mailer

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"

	"github.com/restockhq/reorder-engine/pkg/config"
)

// PurchaseOrder carries everything needed to email one order to a vendor.
type PurchaseOrder struct {
	VendorEmail string
	VendorName  string
	ProductName string
	ProductID   string
	Quantity    int
}

// Mailer sends a purchase order to a vendor. Implementations must fail
// closed: any transport, authentication, or protocol failure is returned as
// an error and never panics or hangs past the context deadline.
type Mailer interface {
	SendPurchaseOrder(ctx context.Context, po PurchaseOrder) error
}

// SMTPMailer implements Mailer over SMTP using go-mail.
type SMTPMailer struct {
	cfg    *config.EmailConfig
	logger *zap.Logger
}

// NewSMTPMailer creates a Mailer from email configuration.
func NewSMTPMailer(cfg *config.EmailConfig, logger *zap.Logger) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, logger: logger.Named("mailer")}
}

// Ensure SMTPMailer implements Mailer at compile time.
var _ Mailer = (*SMTPMailer)(nil)

// Subject builds the purchase-order subject line.
func Subject(po PurchaseOrder) string {
	return fmt.Sprintf("Purchase Order - %s (%s)", po.ProductName, po.ProductID)
}

// Body builds the plain-text purchase-order body. Exposed as a pure
// function so templates can be verified without a mail server.
func Body(po PurchaseOrder, inventoryLocation string) string {
	return fmt.Sprintf(`Dear %s,

We would like to place an order for the following:

Product: %s
Product ID: %s
Quantity Needed: %d units
Inventory Location: %s

Please confirm availability and provide delivery timeline.

Best regards,
Inventory Management System
`, po.VendorName, po.ProductName, po.ProductID, po.Quantity, inventoryLocation)
}

// SendPurchaseOrder composes and sends one purchase-order email. One
// attempt, no retries; retry policy belongs to the caller.
func (m *SMTPMailer) SendPurchaseOrder(ctx context.Context, po PurchaseOrder) error {
	msg := mail.NewMsg()
	if err := msg.FromFormat("Inventory Agent", m.cfg.FromAddress()); err != nil {
		return fmt.Errorf("invalid from address: %w", err)
	}
	if err := msg.To(po.VendorEmail); err != nil {
		return fmt.Errorf("invalid vendor address: %w", err)
	}
	msg.Subject(Subject(po))
	msg.SetBodyString(mail.TypeTextPlain, Body(po, m.cfg.InventoryLocation))

	opts := []mail.Option{
		mail.WithPort(m.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.cfg.Username),
		mail.WithPassword(m.cfg.Password),
		mail.WithTimeout(mail.DefaultTimeout),
	}
	if m.cfg.Port == 465 {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	}

	client, err := mail.NewClient(m.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send purchase order: %w", err)
	}

	m.logger.Info("Purchase order sent",
		zap.String("vendor", po.VendorName),
		zap.String("product_id", po.ProductID),
		zap.Int("quantity", po.Quantity))

	return nil
}
