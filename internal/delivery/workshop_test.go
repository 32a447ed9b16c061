package delivery

import (
	"context"
	"testing"
)

func validConfirmation() WorkshopConfirmation {
	return WorkshopConfirmation{
		Email:    "attendee@example.com",
		Name:     "Alex",
		Subject:  "Workshop Confirmed",
		Template: "<h1>See you there, Alex</h1>",
	}
}

func TestSendWorkshopConfirmation_Delegates(t *testing.T) {
	ft := &fakeTransport{}
	svc := newTestService(&fakeResolver{t: ft})

	res := svc.SendWorkshopConfirmation(context.Background(), validConfirmation())

	if !res.Success {
		t.Fatalf("expected success, got error %q", res.Error)
	}

	msg := ft.lastSent()
	if msg == nil {
		t.Fatal("no message delivered")
	}
	if msg.To != "attendee@example.com" {
		t.Errorf("expected recipient attendee@example.com, got %q", msg.To)
	}
	if msg.Subject != "Workshop Confirmed" {
		t.Errorf("expected subject Workshop Confirmed, got %q", msg.Subject)
	}
	if msg.HTMLBody != "<h1>See you there, Alex</h1>" {
		t.Errorf("expected template as HTML body, got %q", msg.HTMLBody)
	}
	if msg.TextBody != "See you there, Alex" {
		t.Errorf("expected derived text, got %q", msg.TextBody)
	}
}

func TestSendWorkshopConfirmation_MissingFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*WorkshopConfirmation)
	}{
		{"missing email", func(c *WorkshopConfirmation) { c.Email = "" }},
		{"missing name", func(c *WorkshopConfirmation) { c.Name = "" }},
		{"missing subject", func(c *WorkshopConfirmation) { c.Subject = "" }},
		{"missing template", func(c *WorkshopConfirmation) { c.Template = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := &fakeResolver{t: &fakeTransport{}}
			svc := newTestService(resolver)

			c := validConfirmation()
			tt.mutate(&c)

			res := svc.SendWorkshopConfirmation(context.Background(), c)

			if res.Success {
				t.Error("expected failure result")
			}
			if res.Error != errMissingWorkshopParams {
				t.Errorf("unexpected error message: %q", res.Error)
			}
			if resolver.calls != 0 {
				t.Errorf("expected no transport acquisition, resolver called %d times", resolver.calls)
			}
		})
	}
}
