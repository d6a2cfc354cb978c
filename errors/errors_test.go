package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	e := Forbidden("")
	if e.Error() != "FORBIDDEN: You don't have permission to perform this action." {
		t.Errorf("unexpected error string: %s", e.Error())
	}

	cause := stderrors.New("boom")
	e = Internal(cause)
	want := fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, cause)
	if e.Error() != want {
		t.Errorf("Error() = %q, want %q", e.Error(), want)
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := stderrors.New("db gone")
	e := DatabaseError(cause)
	if !stderrors.Is(e, cause) {
		t.Error("expected errors.Is to find the cause")
	}
}

func TestConstructors_HTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want int
	}{
		{"unauthorized", Unauthorized(""), http.StatusUnauthorized},
		{"forbidden", Forbidden(""), http.StatusForbidden},
		{"token_expired", TokenExpired(), http.StatusUnauthorized},
		{"invalid_token", InvalidToken(), http.StatusUnauthorized},
		{"invalid_credentials", InvalidCredentials(), http.StatusUnauthorized},
		{"not_found", NotFound("post", "42"), http.StatusNotFound},
		{"already_exists", AlreadyExists("user"), http.StatusConflict},
		{"invalid_input", InvalidInput("email", "must be an email"), http.StatusBadRequest},
		{"internal", Internal(nil), http.StatusInternalServerError},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.err.HTTPStatus != tc.want {
				t.Errorf("HTTPStatus = %d, want %d", tc.err.HTTPStatus, tc.want)
			}
		})
	}
}

func TestAsAppError(t *testing.T) {
	appErr := NotFound("comment", "9")
	wrapped := fmt.Errorf("handler: %w", appErr)

	got, ok := AsAppError(wrapped)
	if !ok {
		t.Fatal("expected AsAppError to succeed on wrapped error")
	}
	if got.Code != ErrCodeNotFound {
		t.Errorf("code = %s, want %s", got.Code, ErrCodeNotFound)
	}

	if _, ok := AsAppError(stderrors.New("plain")); ok {
		t.Error("expected AsAppError to fail on plain error")
	}
}

func TestToResponse(t *testing.T) {
	e := NotFound("post", "7")
	resp := e.ToResponse()
	if resp.Error.Code != ErrCodeNotFound {
		t.Errorf("code = %s", resp.Error.Code)
	}
	if resp.Error.Details["id"] != "7" {
		t.Errorf("details id = %v", resp.Error.Details["id"])
	}
}
