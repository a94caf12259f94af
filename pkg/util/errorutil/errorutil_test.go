package errorutil

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   string
		wantStatus int
	}{
		{name: "validation", err: NewValidationError("bad field", nil), wantCode: "VALIDATION_FAILED", wantStatus: http.StatusBadRequest},
		{name: "bad request", err: NewBadRequest("nope", nil), wantCode: "BAD_REQUEST", wantStatus: http.StatusBadRequest},
		{name: "not found", err: NewNotFound("claim", nil), wantCode: "NOT_FOUND", wantStatus: http.StatusNotFound},
		{name: "conflict", err: NewConflict("already resolved", nil), wantCode: "CONFLICT", wantStatus: http.StatusConflict},
		{name: "unauthorized", err: NewUnauthorized("no token"), wantCode: "UNAUTHORIZED", wantStatus: http.StatusUnauthorized},
		{name: "forbidden", err: NewForbidden("wrong role"), wantCode: "FORBIDDEN", wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var domainErr *DomainError
			if !errors.As(tt.err, &domainErr) {
				t.Fatalf("not a DomainError: %v", tt.err)
			}
			if domainErr.Code != tt.wantCode {
				t.Errorf("code = %s, want %s", domainErr.Code, tt.wantCode)
			}
			if domainErr.HTTPStatus != tt.wantStatus {
				t.Errorf("status = %d, want %d", domainErr.HTTPStatus, tt.wantStatus)
			}
		})
	}
}

func TestToDomainError(t *testing.T) {
	t.Run("passes through domain errors", func(t *testing.T) {
		original := NewConflict("stop", nil)
		mapped := ToDomainError(original)
		if mapped.Code != "CONFLICT" {
			t.Errorf("code = %s, want CONFLICT", mapped.Code)
		}
	})

	t.Run("maps missing rows to not found", func(t *testing.T) {
		mapped := ToDomainError(pgx.ErrNoRows)
		if mapped.Code != "NOT_FOUND" {
			t.Errorf("code = %s, want NOT_FOUND", mapped.Code)
		}
	})

	t.Run("wraps unknown errors as internal", func(t *testing.T) {
		mapped := ToDomainError(errors.New("boom"))
		if mapped.Code != "INTERNAL_ERROR" {
			t.Errorf("code = %s, want INTERNAL_ERROR", mapped.Code)
		}
		if mapped.HTTPStatus != http.StatusInternalServerError {
			t.Errorf("status = %d, want 500", mapped.HTTPStatus)
		}
	})
}

func TestPredicates(t *testing.T) {
	if !IsNotFound(NewNotFound("claim", nil)) {
		t.Error("IsNotFound should match")
	}
	if IsNotFound(NewConflict("x", nil)) {
		t.Error("IsNotFound should not match conflicts")
	}
	if !IsConflict(NewConflict("x", nil)) {
		t.Error("IsConflict should match")
	}
	if IsConflict(errors.New("plain")) {
		t.Error("IsConflict should not match plain errors")
	}
}

func TestNotFoundDetails(t *testing.T) {
	err := NewNotFound("project", map[string]any{"project_id": "p1"})
	var domainErr *DomainError
	if !errors.As(err, &domainErr) {
		t.Fatal("not a DomainError")
	}
	if domainErr.Message != "project not found" {
		t.Errorf("message = %q", domainErr.Message)
	}
	if domainErr.Details["project_id"] != "p1" {
		t.Errorf("details = %v", domainErr.Details)
	}
}
