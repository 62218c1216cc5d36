package notify

import (
	"errors"
	"fmt"
	"net/smtp"
	"strings"
	"sync"

	"sunnydayy-backend/internal/config"
	"sunnydayy-backend/internal/domain"

	"go.uber.org/zap"
)

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// Mailer sends order confirmations over SMTP. Each message is sent on its
// own goroutine; Wait blocks until all of them have finished.
type Mailer struct {
	cfg    config.SMTP
	logger *zap.Logger
	send   sendFunc
	wg     sync.WaitGroup
}

func NewMailer(cfg config.SMTP, logger *zap.Logger) *Mailer {
	return &Mailer{cfg: cfg, logger: logger, send: smtp.SendMail}
}

func (m *Mailer) OrderPlaced(order domain.Order) {
	subject := fmt.Sprintf("Order %s received", order.ID.Hex())
	body := fmt.Sprintf("Hi %s,\n\nThanks for shopping with us. Your cash on delivery order %s for %s %.2f has been placed.\n\nWe will let you know once it ships.",
		order.FullName, order.ID.Hex(), order.Currency, order.Amount)
	m.dispatch(order, subject, body)
}

func (m *Mailer) PaymentReceived(order domain.Order) {
	subject := fmt.Sprintf("Payment received for order %s", order.ID.Hex())
	body := fmt.Sprintf("Hi %s,\n\nWe received your payment %s of %s %.2f. Your order %s is confirmed.",
		order.FullName, order.PaymentID, order.Currency, order.Amount, order.ID.Hex())
	m.dispatch(order, subject, body)
}

func (m *Mailer) Wait() {
	m.wg.Wait()
}

func (m *Mailer) dispatch(order domain.Order, subject, body string) {
	if !m.cfg.Enabled() {
		m.logger.Debug("SMTP disabled, skipping email",
			zap.String("order_id", order.ID.Hex()),
			zap.String("subject", subject))
		return
	}
	if order.Email == "" {
		return
	}

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		if err := m.Send(order.Email, subject, body); err != nil {
			m.logger.Error("Failed to send email",
				zap.String("order_id", order.ID.Hex()),
				zap.String("to", order.Email),
				zap.Error(err))
			return
		}
		m.logger.Info("Email sent",
			zap.String("order_id", order.ID.Hex()),
			zap.String("to", order.Email))
	}()
}

func (m *Mailer) Send(to, subject, body string) error {
	if strings.ContainsAny(to, "\r\n") || strings.ContainsAny(subject, "\r\n") {
		return errors.New("invalid header value")
	}
	msg := []byte(fmt.Sprintf("From: %s <%s>\r\n"+
		"To: %s\r\n"+
		"Subject: %s\r\n"+
		"Content-Type: text/plain; charset=UTF-8\r\n\r\n"+
		"%s",
		m.cfg.FromName, m.cfg.FromAddr, to, subject, body))

	var auth smtp.Auth
	if m.cfg.User != "" {
		auth = smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Server)
	}

	if err := m.send(m.cfg.Server+":"+m.cfg.Port, auth, m.cfg.FromAddr, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
