package middleware

import (
	"eduflow_backend/internal/config"
	"eduflow_backend/internal/service"
	"eduflow_backend/internal/util"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newAuth(ttl time.Duration) *service.AuthService {
	return service.NewAuthService(&config.JWTConfig{
		Secret:     "test-secret-key-for-unit-testing-2026",
		ExpireTime: ttl,
		CookieName: "token",
	})
}

// newGuardedRouter 返回路由及 handler 是否被调用的标记
func newGuardedRouter(auth *service.AuthService) (*gin.Engine, *bool) {
	reached := false
	r := gin.New()
	r.GET("/submission/:email", CookieAuth(auth), RequireSelf("email"), func(c *gin.Context) {
		reached = true
		c.String(http.StatusOK, "ok")
	})
	return r, &reached
}

func doGet(r *gin.Engine, path string, cookie *http.Cookie, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func issue(t *testing.T, auth *service.AuthService, email string) string {
	t.Helper()
	token, _, err := auth.IssueToken(email, "")
	if err != nil {
		t.Fatalf("IssueToken 失败: %v", err)
	}
	return token
}

func TestCookieAuth_NoToken(t *testing.T) {
	r, reached := newGuardedRouter(newAuth(time.Hour))

	w := doGet(r, "/submission/a@example.com", nil, "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("期望 401，实际=%d", w.Code)
	}
	if *reached {
		t.Error("未认证请求不应到达 handler")
	}
}

func TestCookieAuth_InvalidAndExpired(t *testing.T) {
	auth := newAuth(time.Hour)
	expired := newAuth(-time.Minute)
	other := service.NewAuthService(&config.JWTConfig{Secret: "another-secret", ExpireTime: time.Hour})

	tokens := map[string]string{
		"garbage":      "not.a.jwt",
		"expired":      issue(t, expired, "a@example.com"),
		"wrong secret": issue(t, other, "a@example.com"),
	}
	for name, token := range tokens {
		r, reached := newGuardedRouter(auth)
		w := doGet(r, "/submission/a@example.com", &http.Cookie{Name: "token", Value: token}, "")
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s: 期望 401，实际=%d", name, w.Code)
		}
		if *reached {
			t.Errorf("%s: 不应到达 handler", name)
		}
	}
}

func TestRequireSelf_EmailPairs(t *testing.T) {
	auth := newAuth(time.Hour)
	cases := []struct {
		claim, path string
		want        int
	}{
		{"a@example.com", "a@example.com", http.StatusOK},
		{"a@example.com", "b@example.com", http.StatusForbidden},
		{"b@example.com", "a@example.com", http.StatusForbidden},
		{"a@example.com", "A@example.com", http.StatusForbidden},
	}

	for _, tc := range cases {
		r, reached := newGuardedRouter(auth)
		cookie := &http.Cookie{Name: "token", Value: issue(t, auth, tc.claim)}
		w := doGet(r, "/submission/"+tc.path, cookie, "")
		if w.Code != tc.want {
			t.Errorf("claim=%s path=%s 期望 %d，实际=%d", tc.claim, tc.path, tc.want, w.Code)
		}
		if *reached != (tc.want == http.StatusOK) {
			t.Errorf("claim=%s path=%s handler 到达状态不正确", tc.claim, tc.path)
		}
	}
}

func TestCookieAuth_BearerFallback(t *testing.T) {
	auth := newAuth(time.Hour)
	r, reached := newGuardedRouter(auth)

	w := doGet(r, "/submission/a@example.com", nil, "Bearer "+issue(t, auth, "a@example.com"))
	if w.Code != http.StatusOK || !*reached {
		t.Errorf("Bearer token 应被接受，实际=%d", w.Code)
	}
}

func TestRequireSelf_WithoutClaims(t *testing.T) {
	r := gin.New()
	r.GET("/x/:email", RequireSelf("email"), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := doGet(r, "/x/a@example.com", nil, "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("上下文无 claim 时期望 401，实际=%d", w.Code)
	}
}

func TestTryAuth(t *testing.T) {
	auth := newAuth(time.Hour)
	var got *util.Claims
	r := gin.New()
	r.GET("/x", TryAuth(auth), func(c *gin.Context) {
		got = util.GetUserFromContext(c)
		c.Status(http.StatusOK)
	})

	doGet(r, "/x", nil, "")
	if got != nil {
		t.Error("无 token 时不应设置 claim")
	}

	w := doGet(r, "/x", &http.Cookie{Name: "token", Value: "bad"}, "")
	if w.Code != http.StatusOK || got != nil {
		t.Error("无效 token 时应放行且不设置 claim")
	}

	doGet(r, "/x", &http.Cookie{Name: "token", Value: issue(t, auth, "a@example.com")}, "")
	if got == nil || got.Email != "a@example.com" {
		t.Errorf("有效 token 时应设置 claim，实际=%v", got)
	}
}

func TestTryAuth_BearerHeader(t *testing.T) {
	auth := newAuth(time.Hour)
	var got *util.Claims
	r := gin.New()
	r.GET("/x", TryAuth(auth), func(c *gin.Context) {
		got = util.GetUserFromContext(c)
		c.Status(http.StatusOK)
	})

	doGet(r, "/x", nil, "Bearer "+issue(t, auth, "b@example.com"))
	if got == nil || got.Email != "b@example.com" {
		t.Errorf("Bearer token 应与 cookie 一样被识别，实际=%v", got)
	}

	// cookie 与 header 同时存在时以 cookie 为准
	doGet(r, "/x", &http.Cookie{Name: "token", Value: issue(t, auth, "a@example.com")}, "Bearer "+issue(t, auth, "b@example.com"))
	if got == nil || got.Email != "a@example.com" {
		t.Errorf("期望 cookie 优先，实际=%v", got)
	}
}
