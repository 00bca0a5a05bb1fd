package dberr

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorMessage(t *testing.T) {
	err := Connection("pool create failed", errors.New("ORA-12541: no listener"))

	if !strings.Contains(err.Error(), "[connection]") {
		t.Errorf("expected kind tag in message, got %q", err.Error())
	}
	if !strings.Contains(err.Error(), "ORA-12541") {
		t.Errorf("expected cause in message, got %q", err.Error())
	}
}

func TestErrorMessage_NoCause(t *testing.T) {
	err := Validation("column name must not be empty")
	if strings.Contains(err.Error(), "<nil>") {
		t.Errorf("nil cause leaked into message: %q", err.Error())
	}
}

func TestKindOf_Wrapped(t *testing.T) {
	inner := Timeout("query deadline exceeded", nil)
	wrapped := fmt.Errorf("running health check: %w", inner)

	if KindOf(wrapped) != KindTimeout {
		t.Errorf("expected KindTimeout through wrapping, got %s", KindOf(wrapped))
	}
	if !IsTimeout(wrapped) {
		t.Error("IsTimeout should see through fmt.Errorf wrapping")
	}
}

func TestKindOf_Foreign(t *testing.T) {
	if KindOf(errors.New("plain")) != KindUnknown {
		t.Error("foreign errors should map to KindUnknown")
	}
	if IsConnection(nil) {
		t.Error("nil is not a connection error")
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("ORA-01017: invalid username/password")
	err := Authentication("logon denied", cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the driver cause")
	}
}

func TestKindStrings(t *testing.T) {
	kinds := map[Kind]string{
		KindValidation:     "validation",
		KindConfiguration:  "configuration",
		KindConnection:     "connection",
		KindQuery:          "query",
		KindMetadata:       "metadata",
		KindTimeout:        "timeout",
		KindAuthentication: "authentication",
		KindProcessing:     "processing",
		KindUnknown:        "unknown",
	}
	for k, want := range kinds {
		if k.String() != want {
			t.Errorf("Kind(%d).String() = %q, want %q", k, k.String(), want)
		}
	}
}
