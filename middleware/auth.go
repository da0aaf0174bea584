package middleware

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const adminSessionKey = "admin_first_name"

func jwtKey() []byte {
	key := os.Getenv("JWT_KEY")
	if key == "" {
		key = "dev-only-key"
	}
	return []byte(key)
}

// IssueIdentityToken wraps an anonymous uid in a signed JWT. This is the
// whole identity provider: devices keep the token and present it on every
// request and on the socket handshake.
func IssueIdentityToken(uid string) (string, error) {
	claims := jwt.MapClaims{
		"uid": uid,
		"iat": time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(jwtKey())
	if err != nil {
		return "", fmt.Errorf("error signing identity token: %v", err)
	}
	return signed, nil
}

// VerifyIdentityToken parses a token back into its uid
func VerifyIdentityToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return jwtKey(), nil
	})
	if err != nil {
		return "", fmt.Errorf("error parsing identity token: %v", err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid identity token")
	}
	uid, ok := claims["uid"].(string)
	if !ok || uid == "" {
		return "", fmt.Errorf("identity token has no uid")
	}
	return uid, nil
}

// AuthRequired checks the Bearer identity token and stores the uid in the
// context for handlers
func AuthRequired(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	uid, err := VerifyIdentityToken(strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	c.Set("uid", uid)
	c.Next()
}

// UIDFromContext returns the uid set by AuthRequired
func UIDFromContext(c *gin.Context) string {
	uid, _ := c.Get("uid")
	s, _ := uid.(string)
	return s
}

// AdminRequired checks the session flag set by the admin unlock
func AdminRequired(c *gin.Context) {
	session := sessions.Default(c)
	if session.Get(adminSessionKey) == nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "admin unlock required"})
		return
	}
	c.Next()
}

// MarkAdminSession records a successful unlock in the session
func MarkAdminSession(c *gin.Context, firstName string) error {
	session := sessions.Default(c)
	session.Set(adminSessionKey, strings.ToLower(firstName))
	return session.Save()
}

// AdminFromSession returns the unlocked admin's name, empty if none
func AdminFromSession(c *gin.Context) string {
	session := sessions.Default(c)
	name, _ := session.Get(adminSessionKey).(string)
	return name
}
