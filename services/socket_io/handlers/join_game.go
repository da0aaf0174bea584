package handlers

import (
	"log"
	"strings"

	game_constants "github.com/aftershock-ministries/judas-backend/constants/game"
	"github.com/aftershock-ministries/judas-backend/services/game"
	"github.com/aftershock-ministries/judas-backend/services/redis"
	"github.com/aftershock-ministries/judas-backend/services/roster"
	socketio_types "github.com/aftershock-ministries/judas-backend/services/socket_io/types"
	socketio_utils "github.com/aftershock-ministries/judas-backend/services/socket_io/utils"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// HandleJoinGame registers the device as a player. Duplicate first names
// are allowed: the host tells twins apart visually, the engine keys on the
// stable player id.
func HandleJoinGame(redisClient *redis.RedisClient, client *socket.Socket,
	rosterSrv *roster.GormRoster, machine *game.Machine, uid string,
	sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		firstName := strings.TrimSpace(payloadString(args, "firstName"))
		if firstName == "" {
			client.Emit("error", gin.H{"error": "First name is required"})
			return
		}
		if len(firstName) > game_constants.MaxFirstNameLength {
			client.Emit("error", gin.H{"error": "Keep the first name under 24 characters"})
			return
		}

		player, err := rosterSrv.Join(firstName, uid)
		if err != nil {
			log.Printf("[JOIN-ERROR] Error joining %s: %v", firstName, err)
			client.Emit("error", gin.H{"error": "Could not join. Try again."})
			return
		}

		log.Printf("[JOIN] %s joined (player %s)", player.FirstName, player.ID)
		client.Emit("joined", gin.H{"player": player})

		// The player can already hold a role if the host re-dealt while
		// they were connecting
		if player.Role != "" {
			client.Emit("role", gin.H{"role": player.Role})
		}

		socketio_utils.BroadcastPlayers(sio, redisClient, machine)
	}
}
