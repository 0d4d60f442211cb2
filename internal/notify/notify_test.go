package notify

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/upsell/internal/model"
	"github.com/theirongolddev/upsell/internal/projection"
	"github.com/theirongolddev/upsell/internal/report"
)

func testReport(t *testing.T) report.Report {
	t.Helper()
	in := model.DefaultInput()
	res, err := projection.Project(in)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	return report.Build(in, res)
}

func TestRequestValidate(t *testing.T) {
	tests := []struct {
		email string
		ok    bool
	}{
		{"ceo@acme.io", true},
		{"  ceo@acme.io  ", true},
		{"", false},
		{"not-an-email", false},
		{"Jane <jane@acme.io>", false},
	}
	for _, tc := range tests {
		err := Request{Email: tc.email}.Validate()
		if tc.ok && err != nil {
			t.Fatalf("Validate(%q) = %v, want nil", tc.email, err)
		}
		if !tc.ok && !errors.Is(err, ErrInvalidRecipient) {
			t.Fatalf("Validate(%q) = %v, want ErrInvalidRecipient", tc.email, err)
		}
	}
}

func TestCompose(t *testing.T) {
	pdf := []byte("%PDF-1.3 fake")
	msg, err := Compose(Request{
		Email:   "ceo@acme.io",
		Name:    "<Jane>",
		Company: "Acme",
	}, "reports@upsell.local", testReport(t), pdf, "SaaS_Upsell_Analysis.pdf")
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}

	if msg.To != "ceo@acme.io" || msg.From != "reports@upsell.local" {
		t.Fatalf("addresses = %q -> %q", msg.From, msg.To)
	}
	if msg.Subject != "Your SaaS Upsell Revenue Analysis for Acme" {
		t.Fatalf("Subject = %q", msg.Subject)
	}
	if !strings.Contains(msg.HTML, "Hello &lt;Jane&gt;,") {
		t.Fatal("HTML does not escape the recipient name")
	}
	if !strings.Contains(msg.HTML, "Projected final revenue") {
		t.Fatal("HTML missing summary cards")
	}
	if len(msg.Attachments) != 1 || msg.Attachments[0].ContentType != "application/pdf" {
		t.Fatalf("Attachments = %+v", msg.Attachments)
	}
}

func TestCompose_InvalidRecipient(t *testing.T) {
	_, err := Compose(Request{}, "x@y.z", testReport(t), nil, "r.pdf")
	if !errors.Is(err, ErrInvalidRecipient) {
		t.Fatalf("err = %v, want ErrInvalidRecipient", err)
	}
}

func TestSimulatedSend(t *testing.T) {
	m := NewSimulated(0)
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	m.now = func() time.Time { return fixed }

	rc, err := m.Send(context.Background(), Message{To: "a@b.co", Subject: "s", Attachments: []Attachment{{}}})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if rc.ID == "" || !rc.Simulated || rc.Attachments != 1 || !rc.SentAt.Equal(fixed) {
		t.Fatalf("Receipt = %+v", rc)
	}
	if got := m.Sent(); len(got) != 1 || got[0].ID != rc.ID {
		t.Fatalf("Sent() = %+v", got)
	}

	rc2, err := m.Send(context.Background(), Message{To: "c@d.co"})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if rc2.ID == rc.ID {
		t.Fatal("receipts share an ID")
	}
}

func TestSimulatedSend_Cancelled(t *testing.T) {
	m := NewSimulated(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := m.Send(ctx, Message{To: "a@b.co"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if len(m.Sent()) != 0 {
		t.Fatal("cancelled send was recorded")
	}
}

func TestSimulatedSend_BadAddress(t *testing.T) {
	m := NewSimulated(0)
	if _, err := m.Send(context.Background(), Message{To: "nobody"}); !errors.Is(err, ErrInvalidRecipient) {
		t.Fatalf("err = %v, want ErrInvalidRecipient", err)
	}
}
