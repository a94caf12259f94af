package auth

import (
	"testing"
	"time"

	"github.com/spec-kit/claims-service/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	manager := NewTokenManager("test-secret", 60)

	token, expiresAt, err := manager.GenerateToken("user-1", domain.RoleAuditor)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if time.Until(expiresAt) <= 0 {
		t.Error("token already expired")
	}

	claims, err := manager.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.SubjectID != "user-1" {
		t.Errorf("subject = %s, want user-1", claims.SubjectID)
	}
	if claims.Role != domain.RoleAuditor {
		t.Errorf("role = %s, want AUDITOR", claims.Role)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	manager := NewTokenManager("secret-a", 60)
	token, _, err := manager.GenerateToken("user-1", domain.RoleUser)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	other := NewTokenManager("secret-b", 60)
	if _, err := other.ParseToken(token); err == nil {
		t.Error("expected signature validation failure")
	}
}

func TestParseToken_Garbage(t *testing.T) {
	manager := NewTokenManager("secret", 60)
	if _, err := manager.ParseToken("not.a.jwt"); err == nil {
		t.Error("expected parse failure")
	}
}
