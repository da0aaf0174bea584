package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentityTokenRoundTrip(t *testing.T) {
	token, err := IssueIdentityToken("device-123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	uid, err := VerifyIdentityToken(token)
	require.NoError(t, err)
	assert.Equal(t, "device-123", uid)
}

func TestVerifyIdentityTokenRejectsGarbage(t *testing.T) {
	_, err := VerifyIdentityToken("not-a-token")
	assert.Error(t, err)
}

func TestAuthRequired(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", AuthRequired, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"uid": UIDFromContext(c)})
	})

	t.Run("missing header rejects", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "/protected", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed header rejects", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Basic abc")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token passes the uid through", func(t *testing.T) {
		token, err := IssueIdentityToken("device-123")
		require.NoError(t, err)

		req, _ := http.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "device-123")
	})
}
