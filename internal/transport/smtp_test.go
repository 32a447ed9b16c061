package transport

import (
	"bytes"
	"strings"
	"testing"
)

func testMessage() *Message {
	return &Message{
		From:     Address{Name: "Workshop Hub", Email: "sender@example.com"},
		To:       "a@example.com",
		Subject:  "Welcome",
		HTMLBody: "<p>Hello</p>",
		TextBody: "Hello",
		Headers:  map[string]string{"X-Priority": "1"},
	}
}

func TestSMTP_BuildHeaders(t *testing.T) {
	s := NewSMTP(SMTPConfig{Host: "smtp.example.com", Port: 587})

	m, _ := s.build(testMessage())

	if got := m.GetHeader("To"); len(got) != 1 || got[0] != "a@example.com" {
		t.Errorf("unexpected To header: %v", got)
	}
	if got := m.GetHeader("Subject"); len(got) != 1 || got[0] != "Welcome" {
		t.Errorf("unexpected Subject header: %v", got)
	}
	if got := m.GetHeader("From"); len(got) != 1 || !strings.Contains(got[0], "sender@example.com") {
		t.Errorf("unexpected From header: %v", got)
	}
	if got := m.GetHeader("X-Priority"); len(got) != 1 || got[0] != "1" {
		t.Errorf("unexpected X-Priority header: %v", got)
	}
}

func TestSMTP_BuildMessageID(t *testing.T) {
	s := NewSMTP(SMTPConfig{Host: "smtp.example.com", Port: 587})

	m, id := s.build(testMessage())

	if !strings.HasPrefix(id, "<") || !strings.HasSuffix(id, ">") {
		t.Errorf("expected angle-bracketed message ID, got %q", id)
	}
	if !strings.Contains(id, "@smtp.example.com") {
		t.Errorf("expected message ID scoped to the host, got %q", id)
	}
	if got := m.GetHeader("Message-ID"); len(got) != 1 || got[0] != id {
		t.Errorf("expected Message-ID header %q, got %v", id, got)
	}

	// IDs are unique per message.
	_, other := s.build(testMessage())
	if other == id {
		t.Error("expected distinct message IDs across builds")
	}
}

func TestSMTP_BuildMultipartAlternative(t *testing.T) {
	s := NewSMTP(SMTPConfig{Host: "smtp.example.com", Port: 587})

	m, _ := s.build(testMessage())

	var buf bytes.Buffer
	if _, err := m.WriteTo(&buf); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	wire := buf.String()
	if !strings.Contains(wire, "text/plain") {
		t.Error("expected a text/plain part")
	}
	if !strings.Contains(wire, "text/html") {
		t.Error("expected a text/html part")
	}
	if !strings.Contains(wire, "multipart/alternative") {
		t.Error("expected a multipart/alternative body")
	}
}

func TestSMTP_BuildHTMLOnly(t *testing.T) {
	s := NewSMTP(SMTPConfig{Host: "smtp.example.com", Port: 587})

	msg := testMessage()
	msg.TextBody = ""
	m, _ := s.build(msg)

	var buf bytes.Buffer
	if _, err := m.WriteTo(&buf); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	wire := buf.String()
	if !strings.Contains(wire, "text/html") {
		t.Error("expected a text/html body")
	}
	if strings.Contains(wire, "multipart/alternative") {
		t.Error("expected a single-part body without a text alternative")
	}
}

func TestSMTP_Name(t *testing.T) {
	s := NewSMTP(SMTPConfig{Host: "smtp.example.com", Port: 587})
	if s.Name() != "smtp" {
		t.Errorf("expected name smtp, got %s", s.Name())
	}
}
