package services

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/selahapp/selah-backend/internal/logger"
	"github.com/selahapp/selah-backend/internal/requestdata"
)

const testSecret = "test-secret"

func signToken(t *testing.T, subject string, secret string, expiresIn time.Duration) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestSetContextFromToken_ValidToken(t *testing.T) {
	userID := uuid.New()
	svc := NewAuthService(logger.NewNop(), testSecret)

	ctx, err := svc.SetContextFromToken(context.Background(), signToken(t, userID.String(), testSecret, time.Hour))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID != userID {
		t.Fatalf("request data not set, got %+v", rd)
	}
}

func TestSetContextFromToken_WrongSecret(t *testing.T) {
	svc := NewAuthService(logger.NewNop(), testSecret)
	_, err := svc.SetContextFromToken(context.Background(), signToken(t, uuid.NewString(), "other-secret", time.Hour))
	if err == nil {
		t.Fatalf("expected error for wrong signing key")
	}
}

func TestSetContextFromToken_ExpiredToken(t *testing.T) {
	svc := NewAuthService(logger.NewNop(), testSecret)
	_, err := svc.SetContextFromToken(context.Background(), signToken(t, uuid.NewString(), testSecret, -time.Hour))
	if err == nil {
		t.Fatalf("expected error for expired token")
	}
}

func TestSetContextFromToken_NonUUIDSubject(t *testing.T) {
	svc := NewAuthService(logger.NewNop(), testSecret)
	_, err := svc.SetContextFromToken(context.Background(), signToken(t, "not-a-uuid", testSecret, time.Hour))
	if err == nil {
		t.Fatalf("expected error for malformed subject")
	}
}

func TestSetContextFromToken_EmptyToken(t *testing.T) {
	svc := NewAuthService(logger.NewNop(), testSecret)
	if _, err := svc.SetContextFromToken(context.Background(), ""); err == nil {
		t.Fatalf("expected error for empty token")
	}
}
