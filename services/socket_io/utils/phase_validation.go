package socketio_utils

import (
	"fmt"
	"log"

	redis_models "github.com/aftershock-ministries/judas-backend/models/redis"
	"github.com/aftershock-ministries/judas-backend/services/redis"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// ValidateGamePhase checks if the current game phase matches the expected phase
func ValidateGamePhase(redisClient *redis.RedisClient, client *socket.Socket, expectedPhase redis_models.GamePhase) (bool, error) {
	state, err := redisClient.GetGameState()
	if err != nil {
		log.Printf("[PHASE-ERROR] Error getting game state: %v", err)
		if client != nil {
			client.Emit("error", gin.H{"error": "Error checking game phase"})
		}
		return false, err
	}

	if state.Phase != expectedPhase {
		log.Printf("[PHASE-ERROR] Action attempted during wrong phase: %s (required: %s)",
			state.Phase, expectedPhase)
		if client != nil {
			client.Emit("error", gin.H{
				"error": fmt.Sprintf("This action is only allowed during the %s phase (current phase: %s)",
					expectedPhase, state.Phase),
			})
		}
		return false, nil
	}

	return true, nil
}

// ValidateNightJudasPhase specifically validates the judas night phase
func ValidateNightJudasPhase(redisClient *redis.RedisClient, client *socket.Socket) (bool, error) {
	return ValidateGamePhase(redisClient, client, redis_models.PhaseNightJudas)
}

// ValidateNightAngelPhase specifically validates the angel night phase
func ValidateNightAngelPhase(redisClient *redis.RedisClient, client *socket.Socket) (bool, error) {
	return ValidateGamePhase(redisClient, client, redis_models.PhaseNightAngel)
}

// ValidateDayVotePhase specifically validates the public voting phase
func ValidateDayVotePhase(redisClient *redis.RedisClient, client *socket.Socket) (bool, error) {
	return ValidateGamePhase(redisClient, client, redis_models.PhaseDayVote)
}
