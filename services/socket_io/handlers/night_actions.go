package handlers

import (
	"log"

	"github.com/aftershock-ministries/judas-backend/services/game"
	"github.com/aftershock-ministries/judas-backend/services/redis"
	socketio_types "github.com/aftershock-ministries/judas-backend/services/socket_io/types"
	socketio_utils "github.com/aftershock-ministries/judas-backend/services/socket_io/utils"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// HandleNightVote upserts the judas player's kill choice. Resubmitting
// before the host locks the phase overwrites the previous choice.
func HandleNightVote(redisClient *redis.RedisClient, client *socket.Socket,
	machine *game.Machine, uid string, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		ok, err := socketio_utils.ValidateNightJudasPhase(redisClient, client)
		if !ok || err != nil {
			return
		}

		target := payloadString(args, "target")
		if target == "" {
			client.Emit("error", gin.H{"error": "A target is required"})
			return
		}

		if err := machine.SubmitNightVote(uid, target); err != nil {
			log.Printf("[NIGHT-ERROR] Night vote from %s rejected: %v", uid, err)
			client.Emit("error", gin.H{"error": err.Error()})
			return
		}

		client.Emit("night_vote_accepted", gin.H{"target": target})
		// Only the host may learn whether the kill is locked
		socketio_utils.BroadcastNightStatus(sio, machine)
	}
}

// HandleProtect upserts the angel player's shield choice
func HandleProtect(redisClient *redis.RedisClient, client *socket.Socket,
	machine *game.Machine, uid string, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		ok, err := socketio_utils.ValidateNightAngelPhase(redisClient, client)
		if !ok || err != nil {
			return
		}

		target := payloadString(args, "target")
		if target == "" {
			client.Emit("error", gin.H{"error": "A target is required"})
			return
		}

		if err := machine.SubmitProtect(uid, target); err != nil {
			log.Printf("[NIGHT-ERROR] Protect from %s rejected: %v", uid, err)
			client.Emit("error", gin.H{"error": err.Error()})
			return
		}

		client.Emit("protect_accepted", gin.H{"target": target})
	}
}
