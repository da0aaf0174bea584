package controllers

import (
	"log"
	"net/http"

	"github.com/aftershock-ministries/judas-backend/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// @Summary Issues an anonymous identity
// @Description Mints a persistent anonymous uid wrapped in a signed token. Devices store it and present it on every request and on the socket handshake.
// @Tags identity
// @Produce json
// @Success 200 {object} object{uid=string,token=string}
// @Failure 500 {object} object{error=string}
// @Router /identity [post]
func IssueIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := uuid.NewString()
		token, err := middleware.IssueIdentityToken(uid)
		if err != nil {
			log.Printf("[IDENTITY-ERROR] %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error issuing identity"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"uid": uid, "token": token})
	}
}

// @Summary Returns the caller's uid
// @Description Echoes the uid carried by the presented identity token
// @Tags identity
// @Produce json
// @Param Authorization header string true "Bearer identity token"
// @Success 200 {object} object{uid=string}
// @Failure 401 {object} object{error=string}
// @Router /auth/me [get]
// @Security ApiKeyAuth
func Me() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"uid": middleware.UIDFromContext(c)})
	}
}
