package jwt

import (
	"testing"
	"time"

	"labportal/config"
)

func newTestManager() *Manager {
	return NewManager(&config.AuthConfig{
		JWTSecret:               "test-secret-key-for-unit-testing-2026",
		AccessTokenTTL:          15 * time.Minute,
		RefreshTokenTTLDefault:  24 * time.Hour,
		RefreshTokenTTLRemember: 7 * 24 * time.Hour,
	})
}

func TestGenerateAndParseAccessToken(t *testing.T) {
	m := newTestManager()

	token, err := m.GenerateAccessToken("user-1", "laboptimus")
	if err != nil {
		t.Fatalf("GenerateAccessToken 失败: %v", err)
	}

	claims, err := m.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken 失败: %v", err)
	}

	if claims.UserID != "user-1" {
		t.Errorf("期望 UserID=user-1，实际=%s", claims.UserID)
	}
	if claims.Username != "laboptimus" {
		t.Errorf("期望 Username=laboptimus，实际=%s", claims.Username)
	}
	if claims.TokenType != "access" {
		t.Errorf("期望 TokenType=access，实际=%s", claims.TokenType)
	}
	if claims.Issuer != "labportal" {
		t.Errorf("期望 Issuer=labportal，实际=%s", claims.Issuer)
	}
	if claims.ID == "" {
		t.Error("JTI 不应为空")
	}
}

func TestGenerateRefreshToken_TTL(t *testing.T) {
	m := newTestManager()

	cases := []struct {
		name       string
		rememberMe bool
		min, max   time.Duration
	}{
		{"默认", false, 23 * time.Hour, 25 * time.Hour},
		{"记住我", true, 6 * 24 * time.Hour, 8 * 24 * time.Hour},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			token, err := m.GenerateRefreshToken("user-1", "lab", tc.rememberMe)
			if err != nil {
				t.Fatalf("GenerateRefreshToken 失败: %v", err)
			}
			claims, err := m.ParseToken(token)
			if err != nil {
				t.Fatalf("ParseToken 失败: %v", err)
			}
			if claims.TokenType != "refresh" {
				t.Errorf("期望 TokenType=refresh，实际=%s", claims.TokenType)
			}
			if claims.RememberMe != tc.rememberMe {
				t.Errorf("期望 RememberMe=%v", tc.rememberMe)
			}
			ttl := time.Until(claims.ExpiresAt.Time)
			if ttl < tc.min || ttl > tc.max {
				t.Errorf("TTL 超出预期范围: %v", ttl)
			}
		})
	}
}

func TestParseToken_InvalidToken(t *testing.T) {
	m := newTestManager()

	if _, err := m.ParseToken("invalid.token.string"); err != ErrTokenInvalid {
		t.Errorf("期望 ErrTokenInvalid，实际: %v", err)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	m1 := newTestManager()
	m2 := NewManager(&config.AuthConfig{
		JWTSecret:      "different-secret-key",
		AccessTokenTTL: 15 * time.Minute,
	})

	token, _ := m1.GenerateAccessToken("user-1", "lab")
	if _, err := m2.ParseToken(token); err == nil {
		t.Error("不同密钥签名的 token 不应通过验证")
	}
}

func TestParseToken_ExpiredToken(t *testing.T) {
	m := NewManager(&config.AuthConfig{
		JWTSecret:      "test-secret",
		AccessTokenTTL: 1 * time.Millisecond,
	})

	token, _ := m.GenerateAccessToken("user-1", "lab")
	time.Sleep(10 * time.Millisecond)

	_, err := m.ParseToken(token)
	if err != ErrTokenExpired {
		t.Errorf("期望 ErrTokenExpired，实际: %v", err)
	}
}
