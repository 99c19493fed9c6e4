package handler

import (
	"crypto/subtle"
	"net/http"

	"github.com/anyonghua/onektips-server/internal/common"
	"github.com/anyonghua/onektips-server/internal/config"
	"github.com/anyonghua/onektips-server/pkg/jwt"
	"github.com/gin-gonic/gin"
)

// AuthHandler issues admin session tokens for the fixed admin account
type AuthHandler struct {
	auth       config.AuthConfig
	jwtManager *jwt.Manager
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(auth config.AuthConfig, jwtManager *jwt.Manager) *AuthHandler {
	return &AuthHandler{auth: auth, jwtManager: jwtManager}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(h.auth.User)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.auth.Password)) == 1
	if h.auth.Password == "" || !userOK || !passOK {
		common.Fail(c, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := h.jwtManager.GenerateToken(h.auth.User)
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, "failed to issue token")
		return
	}

	common.OK(c, "login success", gin.H{"token": token})
}
