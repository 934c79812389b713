package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"transientmap/internal/auth"
	"transientmap/internal/models"
	"transientmap/internal/ratelimit"
	"transientmap/internal/session"
)

// SessionHandler serves the session endpoints. Sessions live in a transient
// map and age out with store activity; users live in an in-memory directory.
type SessionHandler struct {
	Users    *models.Directory
	Sessions *session.Store
	Limiter  *ratelimit.Limiter
}

func NewSessionHandler(users *models.Directory, sessions *session.Store, limiter *ratelimit.Limiter) *SessionHandler {
	return &SessionHandler{
		Users:    users,
		Sessions: sessions,
		Limiter:  limiter,
	}
}

// CredentialsRequest is the payload for register and login.
type CredentialsRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse is returned on a successful login.
type LoginResponse struct {
	Token     string `json:"token"`
	SessionID string `json:"session_id"`
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	Message   string `json:"message"`
}

// Register handles POST /api/register.
func (h *SessionHandler) Register(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request. Username and password are required.",
		})
		return
	}

	user, err := h.Users.Register(uuid.NewString(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, models.ErrUserExists) {
			c.JSON(http.StatusConflict, gin.H{"error": "Username already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":       user.ID,
		"username": user.Username,
	})
}

// Login handles POST /api/login. Failed attempts feed the limiter keyed by
// client IP; a success clears the counter.
func (h *SessionHandler) Login(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request. Username and password are required.",
		})
		return
	}

	user, err := h.Users.Authenticate(req.Username, req.Password)
	if err != nil {
		h.Limiter.Hit(c.ClientIP())
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		return
	}
	h.Limiter.Reset(c.ClientIP())

	sess := h.Sessions.Create(user.ID, user.Username)
	token, err := auth.GenerateToken(sess.ID, sess.Username)
	if err != nil {
		h.Sessions.Revoke(sess.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token:     token,
		SessionID: sess.ID,
		UserID:    user.ID,
		Username:  user.Username,
		Message:   "Login successful",
	})
}

// Logout handles POST /api/logout. Revocation is unconditional: even a
// session that already aged out is removed from the store.
func (h *SessionHandler) Logout(c *gin.Context) {
	sessionID := c.GetString("session_id")
	h.Sessions.Revoke(sessionID)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Me handles GET /api/me and reports the authenticated session.
func (h *SessionHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"session_id": c.GetString("session_id"),
		"user_id":    c.GetString("user_id"),
		"username":   c.GetString("username"),
	})
}

// ListSessions handles GET /api/sessions. The listing is a read-only
// snapshot: expired-but-unswept sessions are invisible but not reclaimed.
func (h *SessionHandler) ListSessions(c *gin.Context) {
	sessions := h.Sessions.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"sessions": sessions,
		"count":    len(sessions),
	})
}

// SweepSessions handles POST /api/sessions/sweep. This is the explicit prune:
// nothing reclaims expired sessions until an operator (or cron job) asks.
func (h *SessionHandler) SweepSessions(c *gin.Context) {
	swept := h.Sessions.Sweep()
	if swept == nil {
		swept = []string{}
	}
	c.JSON(http.StatusOK, gin.H{
		"swept":  swept,
		"count":  len(swept),
		"active": h.Sessions.Active(),
	})
}
