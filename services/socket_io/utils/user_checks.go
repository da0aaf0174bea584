package socketio_utils

import (
	"log"

	"github.com/aftershock-ministries/judas-backend/middleware"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// VerifyUserConnection validates the identity token presented in the
// socket handshake and returns the device's anonymous uid
func VerifyUserConnection(client *socket.Socket) (bool, string) {
	authData, ok := client.Handshake().Auth.(map[string]interface{})
	if !ok {
		log.Println("[AUTH-ERROR] No auth data in handshake")
		client.Emit("error", gin.H{"error": "Authentication failed: missing identity token"})
		return false, ""
	}

	tokenString, ok := authData["token"].(string)
	if !ok || tokenString == "" {
		log.Println("[AUTH-ERROR] No identity token in handshake")
		client.Emit("error", gin.H{"error": "Authentication failed: missing identity token"})
		return false, ""
	}

	uid, err := middleware.VerifyIdentityToken(tokenString)
	if err != nil {
		log.Printf("[AUTH-ERROR] Invalid identity token: %v", err)
		client.Emit("error", gin.H{"error": "Authentication failed: invalid identity token"})
		return false, ""
	}

	return true, uid
}
