package transport

import (
	"errors"
	"fmt"
	"net/textproto"
	"testing"
)

func TestClassify_Nil(t *testing.T) {
	if Classify(nil) != nil {
		t.Error("expected nil for nil error")
	}
}

func TestClassify_ServerReply(t *testing.T) {
	tests := []struct {
		name          string
		code          int
		wantCode      string
		wantPermanent bool
	}{
		{"permanent rejection", 550, "550", true},
		{"policy rejection", 554, "554", true},
		{"auth failure", 535, "535", true},
		{"service unavailable", 421, "421", false},
		{"mailbox busy", 450, "450", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := &textproto.Error{Code: tt.code, Msg: "reply"}

			te := Classify(err)
			if te == nil {
				t.Fatal("expected a classified error")
			}
			if te.Code != tt.wantCode {
				t.Errorf("expected code %s, got %s", tt.wantCode, te.Code)
			}
			if te.Permanent != tt.wantPermanent {
				t.Errorf("expected permanent=%v, got %v", tt.wantPermanent, te.Permanent)
			}
		})
	}
}

func TestClassify_WrappedServerReply(t *testing.T) {
	err := fmt.Errorf("smtp: send to a@example.com: %w", &textproto.Error{Code: 550, Msg: "no such user"})

	te := Classify(err)
	if te == nil {
		t.Fatal("expected a classified error")
	}
	if te.Code != "550" {
		t.Errorf("expected code 550, got %s", te.Code)
	}
	if !te.Permanent {
		t.Error("expected 550 to classify as permanent")
	}
}

func TestClassify_UnknownErrorIsTransient(t *testing.T) {
	te := Classify(errors.New("connection reset"))

	if te.Code != "" {
		t.Errorf("expected no code, got %s", te.Code)
	}
	if te.Permanent {
		t.Error("expected unknown errors to classify as transient")
	}
}

func TestIsPermanent(t *testing.T) {
	permanent := fmt.Errorf("wrapped: %w", &Error{Code: "550", Message: "no such user", Permanent: true})
	transient := fmt.Errorf("wrapped: %w", &Error{Code: "421", Message: "try again"})

	if !IsPermanent(permanent) {
		t.Error("expected permanent classification to survive wrapping")
	}
	if IsPermanent(transient) {
		t.Error("expected transient error to report non-permanent")
	}
	if IsPermanent(errors.New("plain")) {
		t.Error("expected unclassified error to report non-permanent")
	}
}

func TestError_Message(t *testing.T) {
	withCode := &Error{Code: "550", Message: "no such user"}
	if withCode.Error() != "smtp 550: no such user" {
		t.Errorf("unexpected message: %q", withCode.Error())
	}

	withoutCode := &Error{Message: "dial tcp: connection refused"}
	if withoutCode.Error() != "dial tcp: connection refused" {
		t.Errorf("unexpected message: %q", withoutCode.Error())
	}
}
