package notify

import (
	"errors"
	"net/smtp"
	"strings"
	"sync"
	"testing"

	"sunnydayy-backend/internal/config"
	"sunnydayy-backend/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type sentMail struct {
	addr string
	from string
	to   []string
	msg  string
}

type outbox struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (o *outbox) send(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.sent = append(o.sent, sentMail{addr: addr, from: from, to: to, msg: string(msg)})
	return o.err
}

func testSMTP() config.SMTP {
	return config.SMTP{
		Server:   "smtp.example.com",
		Port:     "587",
		User:     "mailer",
		Password: "secret",
		FromAddr: "orders@example.com",
		FromName: "SunnyDayy",
	}
}

func testOrder() domain.Order {
	return domain.Order{
		ID:        primitive.NewObjectID(),
		FullName:  "Asha Rao",
		Email:     "asha@example.com",
		Amount:    6797,
		Currency:  "INR",
		PaymentID: "pay_123",
	}
}

func TestMailer_PaymentReceived(t *testing.T) {
	box := &outbox{}
	m := NewMailer(testSMTP(), zap.NewNop())
	m.send = box.send

	order := testOrder()
	m.PaymentReceived(order)
	m.Wait()

	if len(box.sent) != 1 {
		t.Fatalf("Expected 1 email, got %d", len(box.sent))
	}
	got := box.sent[0]
	if got.addr != "smtp.example.com:587" {
		t.Errorf("Unexpected addr %s", got.addr)
	}
	if len(got.to) != 1 || got.to[0] != "asha@example.com" {
		t.Errorf("Unexpected recipients %v", got.to)
	}
	if !strings.Contains(got.msg, "Subject: Payment received for order "+order.ID.Hex()) {
		t.Errorf("Missing subject in %q", got.msg)
	}
	if !strings.Contains(got.msg, "pay_123") {
		t.Errorf("Missing payment id in %q", got.msg)
	}
}

func TestMailer_DisabledSendsNothing(t *testing.T) {
	box := &outbox{}
	m := NewMailer(config.SMTP{}, zap.NewNop())
	m.send = box.send

	m.OrderPlaced(testOrder())
	m.Wait()

	if len(box.sent) != 0 {
		t.Errorf("Expected no email, got %d", len(box.sent))
	}
}

func TestMailer_SendFailureIsLogged(t *testing.T) {
	box := &outbox{err: errors.New("connection refused")}
	m := NewMailer(testSMTP(), zap.NewNop())
	m.send = box.send

	m.OrderPlaced(testOrder())
	m.Wait()

	if len(box.sent) != 1 {
		t.Errorf("Expected one attempt, got %d", len(box.sent))
	}
}

func TestMailer_SendRejectsHeaderInjection(t *testing.T) {
	box := &outbox{}
	m := NewMailer(testSMTP(), zap.NewNop())
	m.send = box.send

	if err := m.Send("a@example.com\r\nBcc: x@example.com", "hi", "body"); err == nil {
		t.Error("Expected an error for a recipient with a line break")
	}
	if len(box.sent) != 0 {
		t.Error("Expected nothing to be sent")
	}
}
