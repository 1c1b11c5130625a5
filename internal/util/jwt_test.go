package util

import (
	"strings"
	"testing"
	"time"
)

const testSecret = "test-secret-key-for-unit-testing-2026"

func TestGenerateAndParseJWT(t *testing.T) {
	emails := []string{"alice@example.com", "bob+tag@school.edu", "  padded@example.com "}
	for _, email := range emails {
		token, _, err := GenerateJWT(email, "Alice", testSecret, 365*24*time.Hour)
		if err != nil {
			t.Fatalf("GenerateJWT 失败: %v", err)
		}

		claims, err := ParseJWT(token, testSecret)
		if err != nil {
			t.Fatalf("ParseJWT 失败: %v", err)
		}

		want := strings.TrimSpace(email)
		if claims.Email != want {
			t.Errorf("期望 Email=%s，实际=%s", want, claims.Email)
		}
		if claims.ID == "" {
			t.Error("JTI 不应为空")
		}
		ttl := time.Until(claims.ExpiresAt.Time)
		if ttl < 364*24*time.Hour || ttl > 366*24*time.Hour {
			t.Errorf("期望有效期约 365 天，实际=%v", ttl)
		}
	}
}

func TestParseJWT_InvalidToken(t *testing.T) {
	if _, err := ParseJWT("invalid.token.string", testSecret); err != ErrTokenInvalid {
		t.Errorf("期望 ErrTokenInvalid，实际: %v", err)
	}
}

func TestParseJWT_WrongSecret(t *testing.T) {
	token, _, _ := GenerateJWT("alice@example.com", "", testSecret, time.Hour)
	if _, err := ParseJWT(token, "different-secret-key"); err == nil {
		t.Error("不同密钥签名的 token 不应通过验证")
	}
}

func TestParseJWT_ExpiredToken(t *testing.T) {
	token, _, _ := GenerateJWT("alice@example.com", "", testSecret, -time.Minute)

	_, err := ParseJWT(token, testSecret)
	if err != ErrTokenExpired {
		t.Errorf("期望 ErrTokenExpired，实际: %v", err)
	}
}

func TestParseJWT_MissingEmail(t *testing.T) {
	token, _, _ := GenerateJWT("", "", testSecret, time.Hour)
	if _, err := ParseJWT(token, testSecret); err != ErrTokenInvalid {
		t.Errorf("缺少 email 的 token 应视为无效，实际: %v", err)
	}
}
