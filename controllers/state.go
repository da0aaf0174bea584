package controllers

import (
	"log"
	"net/http"

	"github.com/aftershock-ministries/judas-backend/services/redis"

	"github.com/gin-gonic/gin"
)

// @Summary Current game state
// @Description Returns the singleton state document every client derives its UI from
// @Tags state
// @Produce json
// @Success 200 {object} object{status=string,phase=string,round=integer}
// @Failure 500 {object} object{error=string}
// @Router /state [get]
func GetGameState(redisClient *redis.RedisClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		state, err := redisClient.GetGameState()
		if err != nil {
			log.Printf("[STATE-ERROR] %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error reading game state"})
			return
		}
		c.JSON(http.StatusOK, state)
	}
}
