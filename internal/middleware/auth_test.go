package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"transientmap/internal/auth"
	"transientmap/internal/session"
)

func protectedRouter(store *session.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(SessionAuthMiddleware(store))
	r.GET("/protected", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestSessionAuthMiddleware_Success(t *testing.T) {
	store := session.NewStore(100)
	r := protectedRouter(store)

	sess := store.Create("u-1", "alice")
	token, err := auth.GenerateToken(sess.ID, sess.Username)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestSessionAuthMiddleware_MissingHeader(t *testing.T) {
	store := session.NewStore(100)
	r := protectedRouter(store)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSessionAuthMiddleware_RevokedSession(t *testing.T) {
	store := session.NewStore(100)
	r := protectedRouter(store)

	sess := store.Create("u-1", "alice")
	token, err := auth.GenerateToken(sess.ID, sess.Username)
	require.NoError(t, err)
	store.Revoke(sess.ID)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSessionAuthMiddleware_SessionAgedOut(t *testing.T) {
	store := session.NewStore(1)
	r := protectedRouter(store)

	sess := store.Create("u-1", "alice")
	token, err := auth.GenerateToken(sess.ID, sess.Username)
	require.NoError(t, err)

	// Unrelated store activity ages the session past its lifetime even
	// though the JWT itself is still hours from expiry.
	store.Create("u-2", "bob")
	store.Create("u-3", "carol")

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
