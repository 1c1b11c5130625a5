package service

import (
	"eduflow_backend/internal/config"
	"eduflow_backend/internal/util"
	"time"
)

// AuthService 签发与校验会话 token，服务端不保存会话状态
type AuthService struct {
	cfg *config.JWTConfig
}

func NewAuthService(cfg *config.JWTConfig) *AuthService {
	return &AuthService{cfg: cfg}
}

func (s *AuthService) IssueToken(email, name string) (string, time.Time, error) {
	return util.GenerateJWT(email, name, s.cfg.Secret, s.cfg.ExpireTime)
}

func (s *AuthService) VerifyToken(token string) (*util.Claims, error) {
	return util.ParseJWT(token, s.cfg.Secret)
}

func (s *AuthService) TokenTTL() time.Duration {
	return s.cfg.ExpireTime
}

func (s *AuthService) CookieName() string {
	if s.cfg.CookieName == "" {
		return "token"
	}
	return s.cfg.CookieName
}
