package handlers

import (
	"log"

	redis_models "github.com/aftershock-ministries/judas-backend/models/redis"
	"github.com/aftershock-ministries/judas-backend/services/game"
	"github.com/aftershock-ministries/judas-backend/services/redis"
	socketio_types "github.com/aftershock-ministries/judas-backend/services/socket_io/types"
	socketio_utils "github.com/aftershock-ministries/judas-backend/services/socket_io/utils"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// Host events all carry the capability token minted when the admin chose
// the host. The machine treats a bad token as a silent no-op; these
// handlers just rebroadcast whatever state resulted.

// HandleClaimHost admits a verified host socket into the host room, where
// the private night tallies are pushed
func HandleClaimHost(redisClient *redis.RedisClient, client *socket.Socket,
	machine *game.Machine, uid string, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		token := payloadString(args, "hostToken")
		if !machine.VerifyHostToken(token) {
			log.Printf("[AUTH] claim_host with an invalid token from %s", uid)
			client.Emit("error", gin.H{"error": "You're not the host"})
			return
		}
		client.Join(socket.Room(socketio_utils.RoomHost))
		client.Emit("host_claimed", gin.H{"message": "Welcome, host"})
		socketio_utils.BroadcastNightStatus(sio, machine)
	}
}

// HandleChooseGame selects the ruleset and shows its rules to everyone
func HandleChooseGame(redisClient *redis.RedisClient, client *socket.Socket,
	machine *game.Machine, uid string, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		kind := redis_models.GameKind(payloadString(args, "game"))
		emitResult(client, machine.ChooseGame(payloadString(args, "hostToken"), kind))
		socketio_utils.BroadcastGameState(sio, redisClient)
	}
}

// HandleBackToRules pauses play and shows the rules screen again
func HandleBackToRules(redisClient *redis.RedisClient, client *socket.Socket,
	machine *game.Machine, uid string, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		emitResult(client, machine.BackToRules(payloadString(args, "hostToken")))
		socketio_utils.BroadcastGameState(sio, redisClient)
	}
}

// HandleSetRoleCounts stores the requested judas/angel population
func HandleSetRoleCounts(redisClient *redis.RedisClient, client *socket.Socket,
	machine *game.Machine, uid string, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		counts := redis_models.RoleCounts{
			Judas: payloadInt(args, "judas"),
			Angel: payloadInt(args, "angel"),
		}
		emitResult(client, machine.SetRoleCounts(payloadString(args, "hostToken"), counts))
		socketio_utils.BroadcastGameState(sio, redisClient)
	}
}

// HandleSetDisclosure flips the projector role-visibility switches
func HandleSetDisclosure(redisClient *redis.RedisClient, client *socket.Socket,
	machine *game.Machine, uid string, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		emitResult(client, machine.SetDisclosure(
			payloadString(args, "hostToken"),
			payloadBool(args, "hideRolesAlive"),
			payloadBool(args, "revealDeadRoles"),
		))
		socketio_utils.BroadcastGameState(sio, redisClient)
		socketio_utils.BroadcastPlayers(sio, redisClient, machine)
	}
}

// HandleStartGame deals roles and enters the first night. Each dealt role
// is whispered directly to its player's socket, never broadcast.
func HandleStartGame(redisClient *redis.RedisClient, client *socket.Socket,
	machine *game.Machine, uid string, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		assignment, err := machine.StartGame(payloadString(args, "hostToken"))
		if err != nil {
			log.Printf("[DEAL-ERROR] %v", err)
			client.Emit("error", gin.H{"error": err.Error()})
			return
		}

		for playerID, role := range assignment {
			player, err := machine.Roster.PlayerByID(playerID)
			if err != nil || player == nil {
				continue
			}
			if conn, ok := sio.GetConnection(player.UID); ok {
				conn.Emit("role", gin.H{"role": role})
			}
		}

		socketio_utils.BroadcastGameState(sio, redisClient)
		socketio_utils.BroadcastPlayers(sio, redisClient, machine)
	}
}

// HandleAdvanceToAngel locks the unanimous judas target and wakes the angels
func HandleAdvanceToAngel(redisClient *redis.RedisClient, client *socket.Socket,
	machine *game.Machine, uid string, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		emitResult(client, machine.AdvanceToAngel(payloadString(args, "hostToken")))
		socketio_utils.BroadcastGameState(sio, redisClient)
	}
}

// HandleRevealNight resolves the night and shows the outcome
func HandleRevealNight(redisClient *redis.RedisClient, client *socket.Socket,
	machine *game.Machine, uid string, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		emitResult(client, machine.RevealNight(payloadString(args, "hostToken")))
		socketio_utils.BroadcastGameState(sio, redisClient)
		socketio_utils.BroadcastPlayers(sio, redisClient, machine)
	}
}

// HandleBeginDiscussion opens the timed day window
func HandleBeginDiscussion(redisClient *redis.RedisClient, client *socket.Socket,
	machine *game.Machine, uid string, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		emitResult(client, machine.BeginDiscussion(payloadString(args, "hostToken")))
		socketio_utils.BroadcastGameState(sio, redisClient)
	}
}

// HandleOpenVoting moves from discussion to public voting
func HandleOpenVoting(redisClient *redis.RedisClient, client *socket.Socket,
	machine *game.Machine, uid string, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		emitResult(client, machine.OpenVoting(payloadString(args, "hostToken")))
		socketio_utils.BroadcastGameState(sio, redisClient)
	}
}

// HandleResolveDayVote tallies the accusations and reveals the outcome
func HandleResolveDayVote(redisClient *redis.RedisClient, client *socket.Socket,
	machine *game.Machine, uid string, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		emitResult(client, machine.ResolveDayVote(payloadString(args, "hostToken")))
		socketio_utils.BroadcastGameState(sio, redisClient)
		socketio_utils.BroadcastPlayers(sio, redisClient, machine)
	}
}

// HandleClearVotes restarts a botched public vote
func HandleClearVotes(redisClient *redis.RedisClient, client *socket.Socket,
	machine *game.Machine, uid string, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		emitResult(client, machine.ClearVotes(payloadString(args, "hostToken")))
		socketio_utils.BroadcastDayTally(sio, redisClient)
	}
}

// HandleNextRound clears the finished round's documents and starts the next
func HandleNextRound(redisClient *redis.RedisClient, client *socket.Socket,
	machine *game.Machine, uid string, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		emitResult(client, machine.NextRound(payloadString(args, "hostToken")))
		socketio_utils.BroadcastGameState(sio, redisClient)
		socketio_utils.BroadcastNightStatus(sio, machine)
	}
}

// HandleKillPlayer is the host's manual override
func HandleKillPlayer(redisClient *redis.RedisClient, client *socket.Socket,
	machine *game.Machine, uid string, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		emitResult(client, machine.KillPlayer(payloadString(args, "hostToken"), payloadString(args, "firstName")))
		socketio_utils.BroadcastPlayers(sio, redisClient, machine)
	}
}

// HandleRevivePlayer reverts a mistaken elimination
func HandleRevivePlayer(redisClient *redis.RedisClient, client *socket.Socket,
	machine *game.Machine, uid string, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		emitResult(client, machine.RevivePlayer(payloadString(args, "hostToken"), payloadString(args, "firstName")))
		socketio_utils.BroadcastPlayers(sio, redisClient, machine)
	}
}

func emitResult(client *socket.Socket, err error) {
	if err != nil {
		log.Printf("[HOST-ERROR] %v", err)
		client.Emit("error", gin.H{"error": err.Error()})
	}
}
