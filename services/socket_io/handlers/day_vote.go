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

// HandleDayVote upserts a public accusation. The tally always reflects each
// voter's latest choice, resubmission replaces instead of appending.
func HandleDayVote(redisClient *redis.RedisClient, client *socket.Socket,
	machine *game.Machine, uid string, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		ok, err := socketio_utils.ValidateDayVotePhase(redisClient, client)
		if !ok || err != nil {
			return
		}

		target := payloadString(args, "target")
		if target == "" {
			client.Emit("error", gin.H{"error": "A target is required"})
			return
		}
		roleGuess := payloadString(args, "roleGuess")

		if err := machine.SubmitDayVote(uid, target, roleGuess); err != nil {
			log.Printf("[DAY-ERROR] Day vote from %s rejected: %v", uid, err)
			client.Emit("error", gin.H{"error": err.Error()})
			return
		}

		client.Emit("day_vote_accepted", gin.H{"target": target})
		socketio_utils.BroadcastDayTally(sio, redisClient)
	}
}
