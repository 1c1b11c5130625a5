package controller

import (
	"eduflow_backend/internal/service"
	"eduflow_backend/internal/util"
	"eduflow_backend/pkg/monitoring"
	"net/http"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
	IsRelease   bool // 生产环境启用 Secure + SameSite=None
}

func NewAuthController(authService *service.AuthService, isRelease bool) *AuthController {
	return &AuthController{
		AuthService: authService,
		IsRelease:   isRelease,
	}
}

// IssueTokenRequest 会话签发请求
// swagger:model IssueTokenRequest
type IssueTokenRequest struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name"`
}

func (c *AuthController) setTokenCookie(ctx *gin.Context, value string, maxAge int) {
	if c.IsRelease {
		ctx.SetSameSite(http.SameSiteNoneMode)
	} else {
		ctx.SetSameSite(http.SameSiteStrictMode)
	}
	ctx.SetCookie(c.AuthService.CookieName(), value, maxAge, "/", "", c.IsRelease, true)
}

// IssueToken godoc
// @Summary Issue a session cookie
// @Description Signs a JWT for the posted identity and stores it in an HTTP-only cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param body body IssueTokenRequest true "identity"
// @Success 200 {object} util.Response{data=map[string]interface{}}
// @Failure 400 {object} util.Response
// @Failure 500 {object} util.Response
// @Router /jwt [post]
func (c *AuthController) IssueToken(ctx *gin.Context) {
	var req IssueTokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindError(ctx, err)
		return
	}

	token, _, err := c.AuthService.IssueToken(req.Email, req.Name)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	monitoring.TokensIssued.Inc()

	c.setTokenCookie(ctx, token, int(c.AuthService.TokenTTL().Seconds()))
	util.Success(ctx, gin.H{"success": true})
}

// Logout godoc
// @Summary Clear the session cookie
// @Description Idempotent; succeeds even when no cookie is present
// @Tags auth
// @Produce json
// @Success 200 {object} util.Response{data=map[string]interface{}}
// @Router /logout [get]
func (c *AuthController) Logout(ctx *gin.Context) {
	// maxAge < 0 时 gin 输出 Max-Age=0
	c.setTokenCookie(ctx, "", -1)
	util.Success(ctx, gin.H{"success": true})
}
