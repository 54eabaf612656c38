package stayhooks

import (
	"errors"
	"net/http"
	"testing"

	goerrors "github.com/goliatone/go-errors"
)

func TestErrorPredicates(t *testing.T) {
	valErr := validationError("bad input")
	authErr := authError(http.StatusUnauthorized, "bad token", nil)
	forbiddenErr := authError(http.StatusForbidden, "not yours", nil)
	httpErr := httpError(http.StatusConflict, "label taken", map[string]any{"error": "label taken"})
	netErr := networkError(errors.New("dial tcp: refused"), "failed to reach StayHere server")

	tests := []struct {
		name                               string
		err                                error
		validation, auth, httpKind, network bool
	}{
		{name: "validation", err: valErr, validation: true},
		{name: "auth 401", err: authErr, auth: true, httpKind: true},
		{name: "auth 403", err: forbiddenErr, auth: true, httpKind: true},
		{name: "http", err: httpErr, httpKind: true},
		{name: "network", err: netErr, network: true},
		{name: "plain error", err: errors.New("nope")},
		{name: "nil", err: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidation(tt.err); got != tt.validation {
				t.Fatalf("IsValidation = %v, want %v", got, tt.validation)
			}
			if got := IsAuth(tt.err); got != tt.auth {
				t.Fatalf("IsAuth = %v, want %v", got, tt.auth)
			}
			if got := IsHTTP(tt.err); got != tt.httpKind {
				t.Fatalf("IsHTTP = %v, want %v", got, tt.httpKind)
			}
			if got := IsNetwork(tt.err); got != tt.network {
				t.Fatalf("IsNetwork = %v, want %v", got, tt.network)
			}
		})
	}
}

func TestStatusCodeAndResponseBody(t *testing.T) {
	body := map[string]any{"error": "label taken", "conflictWith": "wh-2"}
	err := httpError(http.StatusConflict, "label taken", body)

	if got := StatusCode(err); got != http.StatusConflict {
		t.Fatalf("StatusCode = %d, want 409", got)
	}
	got := ResponseBody(err)
	if got["conflictWith"] != "wh-2" {
		t.Fatalf("ResponseBody = %#v", got)
	}

	if StatusCode(validationError("x")) != 0 {
		t.Fatalf("validation errors carry no HTTP status")
	}
	if ResponseBody(errors.New("plain")) != nil {
		t.Fatalf("plain errors carry no response body")
	}
}

func TestErrors_ShareCommonBaseType(t *testing.T) {
	// Callers can catch every client failure with one errors.As target.
	for _, err := range []error{
		validationError("v"),
		authError(401, "a", nil),
		httpError(500, "h", nil),
		networkError(errors.New("n"), "n"),
	} {
		var rich *goerrors.Error
		if !goerrors.As(err, &rich) {
			t.Fatalf("err %v does not unwrap to the common error type", err)
		}
	}
}
