package socketio_utils

import (
	"log"

	redis_models "github.com/aftershock-ministries/judas-backend/models/redis"
	"github.com/aftershock-ministries/judas-backend/services/game"
	"github.com/aftershock-ministries/judas-backend/services/redis"
	socketio_types "github.com/aftershock-ministries/judas-backend/services/socket_io/types"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// Rooms. Every connected client sits in RoomGame and receives each fresh
// snapshot; only the verified host sits in RoomHost and receives the
// private night tallies.
const (
	RoomGame = "game"
	RoomHost = "host"
)

// BroadcastGameState pushes the current state document to every client.
// This is the "live query" of the protocol: clients derive their whole UI
// from the latest snapshot, never from local state.
func BroadcastGameState(sio *socketio_types.SocketServer, redisClient *redis.RedisClient) {
	state, err := redisClient.GetGameState()
	if err != nil {
		log.Printf("[BROADCAST-ERROR] Error getting game state: %v", err)
		return
	}
	sio.Sio_server.To(socket.Room(RoomGame)).Emit("state", state)
}

// BroadcastPlayers pushes the roster with roles redacted according to the
// disclosure flags: an alive player's role shows only when hideRolesAlive
// is off, a dead player's role only when revealDeadRoles is on.
func BroadcastPlayers(sio *socketio_types.SocketServer, redisClient *redis.RedisClient, machine *game.Machine) {
	state, err := redisClient.GetGameState()
	if err != nil {
		log.Printf("[BROADCAST-ERROR] Error getting game state: %v", err)
		return
	}
	players, err := machine.Roster.Players()
	if err != nil {
		log.Printf("[BROADCAST-ERROR] Error listing players: %v", err)
		return
	}

	view := make([]gin.H, 0, len(players))
	for _, p := range players {
		role := ""
		if p.Alive && !state.HideRolesAlive {
			role = p.Role
		}
		if !p.Alive && state.RevealDeadRoles {
			role = p.Role
		}
		view = append(view, gin.H{
			"id":        p.ID,
			"firstName": p.FirstName,
			"alive":     p.Alive,
			"role":      role,
			"joinedAt":  p.JoinedAt,
		})
	}
	sio.Sio_server.To(socket.Room(RoomGame)).Emit("players", view)
}

// BroadcastNightStatus tells the host whether the judas votes have locked
// a target. Host room only: the projector must not leak the night tally.
func BroadcastNightStatus(sio *socketio_types.SocketServer, machine *game.Machine) {
	votes, target, unanimous, err := machine.NightStatus()
	if err != nil {
		log.Printf("[BROADCAST-ERROR] Error computing night status: %v", err)
		return
	}
	payload := gin.H{
		"votes":     votes,
		"unanimous": unanimous,
	}
	if unanimous {
		payload["target"] = target
	}
	sio.Sio_server.To(socket.Room(RoomHost)).Emit("night_status", payload)
}

// BroadcastDayTally pushes the public tally to everyone during day_vote
func BroadcastDayTally(sio *socketio_types.SocketServer, redisClient *redis.RedisClient) {
	state, err := redisClient.GetGameState()
	if err != nil {
		log.Printf("[BROADCAST-ERROR] Error getting game state: %v", err)
		return
	}
	if state.Phase != redis_models.PhaseDayVote {
		return
	}
	votes, err := redisClient.GetDayVotes(state.Round)
	if err != nil {
		log.Printf("[BROADCAST-ERROR] Error getting day votes: %v", err)
		return
	}
	sio.Sio_server.To(socket.Room(RoomGame)).Emit("day_tally", gin.H{
		"round": state.Round,
		"tally": game.TallyVotes(votes),
	})
}
