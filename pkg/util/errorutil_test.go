package util

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/field-activity-service/internal/domain"
)

func TestToDomainErrorSentinels(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		code   string
		status int
	}{
		{"invalid credentials", domain.ErrInvalidCredentials, "INVALID_CREDENTIALS", http.StatusUnauthorized},
		{"missing token", domain.ErrMissingToken, "UNAUTHORIZED", http.StatusUnauthorized},
		{"invalid token", domain.ErrInvalidToken, "UNAUTHORIZED", http.StatusUnauthorized},
		{"forbidden", domain.ErrForbidden, "FORBIDDEN", http.StatusForbidden},
		{"duplicate user", domain.ErrDuplicateUser, "CONFLICT", http.StatusConflict},
		{"throttled", domain.ErrTooManyAttempts, "RATE_LIMITED", http.StatusTooManyRequests},
		{"not found", domain.ErrNotFound, "NOT_FOUND", http.StatusNotFound},
		{"unknown", errors.New("disk on fire"), "INTERNAL_ERROR", http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mapped := ToDomainError(tc.err)
			if mapped.Code != tc.code {
				t.Fatalf("expected code %s got %s", tc.code, mapped.Code)
			}
			if mapped.HTTPStatus != tc.status {
				t.Fatalf("expected status %d got %d", tc.status, mapped.HTTPStatus)
			}
		})
	}
}

func TestToDomainErrorPassesThroughDomainError(t *testing.T) {
	original := NewDomainError("VALIDATION_FAILED", "bad input", http.StatusBadRequest, map[string]any{"field": "required"})
	mapped := ToDomainError(original)
	if mapped != original {
		t.Fatal("expected same DomainError instance")
	}
}

func TestToDomainErrorMapsFiberErrors(t *testing.T) {
	mapped := ToDomainError(fiber.NewError(http.StatusBadRequest, "invalid payload"))
	if mapped.HTTPStatus != http.StatusBadRequest || mapped.Code != "BAD_REQUEST" {
		t.Fatalf("unexpected mapping %+v", mapped)
	}
	if mapped.Message != "invalid payload" {
		t.Fatalf("expected message preserved, got %s", mapped.Message)
	}
}

func TestToDomainErrorMapsUniqueViolation(t *testing.T) {
	mapped := ToDomainError(&pgconn.PgError{Code: "23505"})
	if mapped.HTTPStatus != http.StatusConflict {
		t.Fatalf("expected 409 got %d", mapped.HTTPStatus)
	}
}
