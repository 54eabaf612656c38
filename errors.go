package stayhooks

import (
	"net/http"

	goerrors "github.com/goliatone/go-errors"
)

// Error text codes attached to every error the client produces. Callers that
// need coarse handling can match the category via the predicates below;
// text codes identify the exact failure site.
const (
	ErrCodeValidation  = "STAYHOOKS_VALIDATION_FAILED"
	ErrCodeAuth        = "STAYHOOKS_AUTH_FAILED"
	ErrCodeHTTP        = "STAYHOOKS_HTTP_FAILURE"
	ErrCodeNetwork     = "STAYHOOKS_NETWORK_FAILURE"
	ErrCodeBadResponse = "STAYHOOKS_BAD_RESPONSE"
)

const metadataResponseKey = "response"

func validationError(message string, fields ...goerrors.FieldError) error {
	if len(fields) > 0 {
		return goerrors.NewValidation(message, fields...).
			WithCode(http.StatusBadRequest).
			WithTextCode(ErrCodeValidation)
	}
	return goerrors.New(message, goerrors.CategoryValidation).
		WithCode(http.StatusBadRequest).
		WithTextCode(ErrCodeValidation)
}

func authError(status int, message string, body map[string]any) error {
	category := goerrors.CategoryAuth
	if status == http.StatusForbidden {
		category = goerrors.CategoryAuthz
	}
	err := goerrors.New(message, category).
		WithCode(status).
		WithTextCode(ErrCodeAuth)
	if len(body) > 0 {
		err.WithMetadata(map[string]any{metadataResponseKey: body})
	}
	return err
}

func httpError(status int, message string, body map[string]any) error {
	err := goerrors.New(message, goerrors.CategoryExternal).
		WithCode(status).
		WithTextCode(ErrCodeHTTP)
	if len(body) > 0 {
		err.WithMetadata(map[string]any{metadataResponseKey: body})
	}
	return err
}

func networkError(source error, message string) error {
	return goerrors.Wrap(source, goerrors.CategoryOperation, message).
		WithTextCode(ErrCodeNetwork)
}

func badResponseError(source error, raw []byte) error {
	err := goerrors.Wrap(source, goerrors.CategoryOperation, "server response was not valid JSON").
		WithTextCode(ErrCodeBadResponse)
	err.WithMetadata(map[string]any{metadataResponseKey: string(raw)})
	return err
}

// IsValidation reports whether err was raised client-side before any request
// was issued: missing payload fields, bad colors, out-of-range poll options,
// no-op updates, unresolvable invoke targets.
func IsValidation(err error) bool {
	rich := asRich(err)
	if rich == nil {
		return false
	}
	return rich.Category == goerrors.CategoryValidation || rich.Category == goerrors.CategoryBadInput
}

// IsAuth reports whether err represents a 401/403 response, or an owner-token
// call attempted without a token configured.
func IsAuth(err error) bool {
	rich := asRich(err)
	if rich == nil {
		return false
	}
	return rich.Category == goerrors.CategoryAuth || rich.Category == goerrors.CategoryAuthz
}

// IsHTTP reports whether err carries a non-2xx HTTP status. Auth failures
// are HTTP failures too; check IsAuth first for targeted recovery.
func IsHTTP(err error) bool {
	rich := asRich(err)
	if rich == nil {
		return false
	}
	return rich.Category == goerrors.CategoryExternal || IsAuth(err)
}

// IsNetwork reports whether err is a transport-level failure: DNS,
// connection refused, timeout, or a malformed response body.
func IsNetwork(err error) bool {
	rich := asRich(err)
	if rich == nil {
		return false
	}
	return rich.Category == goerrors.CategoryOperation
}

// StatusCode returns the HTTP status carried by err, or 0 when err carries
// none (validation and network failures).
func StatusCode(err error) int {
	rich := asRich(err)
	if rich == nil || IsValidation(err) || IsNetwork(err) {
		return 0
	}
	return rich.Code
}

// ResponseBody returns the decoded error response body, when the server sent
// one alongside a non-2xx status.
func ResponseBody(err error) map[string]any {
	rich := asRich(err)
	if rich == nil || rich.Metadata == nil {
		return nil
	}
	body, _ := rich.Metadata[metadataResponseKey].(map[string]any)
	return body
}

func asRich(err error) *goerrors.Error {
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		return nil
	}
	return rich
}
