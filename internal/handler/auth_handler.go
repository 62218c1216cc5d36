package handler

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"sunnydayy-backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AdminCredentials is the single administrator account configured at startup.
type AdminCredentials struct {
	Email        string
	PasswordHash string
	JWTSecret    []byte
}

type AuthHandler struct {
	creds  AdminCredentials
	logger *zap.Logger
	now    func() time.Time
}

func NewAuthHandler(creds AdminCredentials, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{creds: creds, logger: logger, now: time.Now}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	emailOK := subtle.ConstantTimeCompare(
		[]byte(strings.ToLower(req.Email)),
		[]byte(strings.ToLower(h.creds.Email)),
	) == 1
	passErr := bcrypt.CompareHashAndPassword([]byte(h.creds.PasswordHash), []byte(req.Password))
	if !emailOK || passErr != nil {
		h.logger.Warn("Admin login failed", zap.String("ip", c.ClientIP()))
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid email or password"})
		return
	}

	token, expires, err := middleware.IssueAdminToken(h.creds.JWTSecret, h.creds.Email, h.now())
	if err != nil {
		respondError(c, h.logger, err, "Admin", "sign in")
		return
	}

	h.logger.Info("Admin logged in", zap.String("email", h.creds.Email))
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"token":     token,
		"expiresAt": expires,
	})
}
