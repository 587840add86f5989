package security

import (
	"testing"
	"time"

	"github.com/peterayad-eng/nexus-job-board-api/internal/common"
)

func TestJWTProviderRoundTrip(t *testing.T) {
	provider := NewJWTProvider("secret")
	userID := common.NewUUID()

	pair, err := provider.GeneratePair(userID, "employer", false, time.Minute, time.Hour)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	claims, err := provider.ParseAccess(pair.AccessToken)
	if err != nil {
		t.Fatalf("expected access token to parse, got %v", err)
	}
	if claims.UserID != userID.String() {
		t.Fatalf("expected user_id %s, got %s", userID, claims.UserID)
	}
	if claims.Role != "employer" {
		t.Fatalf("expected role employer, got %s", claims.Role)
	}
}

func TestJWTProviderRejectsWrongTokenType(t *testing.T) {
	provider := NewJWTProvider("secret")
	pair, err := provider.GeneratePair(common.NewUUID(), "job_seeker", false, time.Minute, time.Hour)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if _, err := provider.ParseAccess(pair.RefreshToken); err == nil {
		t.Fatal("expected refresh token to be rejected as access token")
	}
	if _, err := provider.ParseRefresh(pair.AccessToken); err == nil {
		t.Fatal("expected access token to be rejected as refresh token")
	}
}

func TestJWTProviderRejectsExpired(t *testing.T) {
	provider := NewJWTProvider("secret")
	pair, err := provider.GeneratePair(common.NewUUID(), "job_seeker", false, -time.Minute, time.Hour)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if _, err := provider.ParseAccess(pair.AccessToken); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestJWTProviderRejectsForeignSignature(t *testing.T) {
	provider := NewJWTProvider("secret")
	other := NewJWTProvider("other-secret")
	pair, err := other.GeneratePair(common.NewUUID(), "admin", false, time.Minute, time.Hour)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if _, err := provider.ParseAccess(pair.AccessToken); err == nil {
		t.Fatal("expected token signed with another secret to be rejected")
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if hash == "correct horse battery staple" {
		t.Fatal("password stored in plaintext")
	}
	if !CheckPassword(hash, "correct horse battery staple") {
		t.Fatal("expected password to verify")
	}
	if CheckPassword(hash, "wrong") {
		t.Fatal("expected wrong password to fail")
	}
}
