package socket_io

import (
	"log"
	"time"

	"github.com/aftershock-ministries/judas-backend/services/game"
	"github.com/aftershock-ministries/judas-backend/services/redis"
	"github.com/aftershock-ministries/judas-backend/services/roster"
	"github.com/aftershock-ministries/judas-backend/services/socket_io/handlers"
	socketio_types "github.com/aftershock-ministries/judas-backend/services/socket_io/types"
	socketio_utils "github.com/aftershock-ministries/judas-backend/services/socket_io/utils"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io/v2/socket"
)

type JudasSocketServer socketio_types.SocketServer

// Start mounts the socket.io server on the gin router and registers every
// game event. Clients connect once, present their identity token, and from
// then on receive pushed snapshots after every accepted mutation.
func (sio *JudasSocketServer) Start(router *gin.Engine, redisClient *redis.RedisClient,
	rosterSrv *roster.GormRoster, machine *game.Machine) {
	c := socket.DefaultServerOptions()
	c.SetServeClient(true)
	// Higher ping interval and timeout to 1) reduce network load and
	// 2) support slower networks (a hall full of phones)
	c.SetPingInterval(5 * time.Second)
	c.SetPingTimeout(3 * time.Second)
	c.SetMaxHttpBufferSize(1000000)
	c.SetConnectTimeout(10 * time.Second)
	c.SetTransports(types.NewSet("polling", "websocket"))
	c.SetCors(&types.Cors{
		Origin:      "*",
		Credentials: true,
	})

	sio.UserConnections = make(map[string]*socket.Socket)

	sio.Sio_server = socket.NewServer(nil, nil)
	sio.Sio_server.On("connection", func(clients ...interface{}) {
		client := clients[0].(*socket.Socket)

		success, uid := socketio_utils.VerifyUserConnection(client)
		if !success {
			return
		}

		typed := (*socketio_types.SocketServer)(sio)
		typed.AddConnection(uid, client)
		log.Printf("[CONN] Device %s connected (socket %s)", uid, client.Id())

		// Every client subscribes to the shared snapshots
		client.Join(socket.Room(socketio_utils.RoomGame))

		// Initial snapshot so a reconnecting phone renders immediately
		if state, err := redisClient.GetGameState(); err == nil {
			client.Emit("state", state)
		}
		if player, err := rosterSrv.PlayerByUID(uid); err == nil && player != nil && player.Role != "" {
			client.Emit("role", gin.H{"role": player.Role})
		}

		// Player actions
		client.On("join_game", handlers.HandleJoinGame(redisClient, client, rosterSrv, machine, uid, typed))
		client.On("night_vote", handlers.HandleNightVote(redisClient, client, machine, uid, typed))
		client.On("protect", handlers.HandleProtect(redisClient, client, machine, uid, typed))
		client.On("day_vote", handlers.HandleDayVote(redisClient, client, machine, uid, typed))

		// Host actions (capability token checked inside the machine)
		client.On("claim_host", handlers.HandleClaimHost(redisClient, client, machine, uid, typed))
		client.On("choose_game", handlers.HandleChooseGame(redisClient, client, machine, uid, typed))
		client.On("back_to_rules", handlers.HandleBackToRules(redisClient, client, machine, uid, typed))
		client.On("set_role_counts", handlers.HandleSetRoleCounts(redisClient, client, machine, uid, typed))
		client.On("set_disclosure", handlers.HandleSetDisclosure(redisClient, client, machine, uid, typed))
		client.On("start_game", handlers.HandleStartGame(redisClient, client, machine, uid, typed))
		client.On("advance_to_angel", handlers.HandleAdvanceToAngel(redisClient, client, machine, uid, typed))
		client.On("reveal_night", handlers.HandleRevealNight(redisClient, client, machine, uid, typed))
		client.On("begin_discussion", handlers.HandleBeginDiscussion(redisClient, client, machine, uid, typed))
		client.On("open_voting", handlers.HandleOpenVoting(redisClient, client, machine, uid, typed))
		client.On("resolve_day_vote", handlers.HandleResolveDayVote(redisClient, client, machine, uid, typed))
		client.On("clear_votes", handlers.HandleClearVotes(redisClient, client, machine, uid, typed))
		client.On("next_round", handlers.HandleNextRound(redisClient, client, machine, uid, typed))
		client.On("kill_player", handlers.HandleKillPlayer(redisClient, client, machine, uid, typed))
		client.On("revive_player", handlers.HandleRevivePlayer(redisClient, client, machine, uid, typed))

		client.On("disconnecting", func(...interface{}) {
			typed.RemoveConnection(uid)
			log.Printf("[CONN] Device %s disconnected", uid)
		})
	})

	router.POST("/socket.io/*f", gin.WrapH(sio.Sio_server.ServeHandler(c)))
	router.GET("/socket.io/*f", gin.WrapH(sio.Sio_server.ServeHandler(c)))

	log.Println("Socket server started")
}

// Close shuts the socket server down
func (sio *JudasSocketServer) Close() {
	if sio.Sio_server != nil {
		sio.Sio_server.Close(nil)
	}
}
