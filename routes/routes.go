package routes

import (
	"github.com/aftershock-ministries/judas-backend/controllers"
	"github.com/aftershock-ministries/judas-backend/middleware"
	"github.com/aftershock-ministries/judas-backend/services/game"
	"github.com/aftershock-ministries/judas-backend/services/redis"
	"github.com/aftershock-ministries/judas-backend/services/roster"
	socketio_types "github.com/aftershock-ministries/judas-backend/services/socket_io/types"
	socketio_utils "github.com/aftershock-ministries/judas-backend/services/socket_io/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, db *gorm.DB, redisClient *redis.RedisClient,
	rosterSrv *roster.GormRoster, machine *game.Machine, sio *socketio_types.SocketServer) {

	// Admin mutations happen over REST, so the consoles watching the socket
	// need a push after each one
	notifyState := func() {
		socketio_utils.BroadcastGameState(sio, redisClient)
	}
	notifyPlayers := func() {
		socketio_utils.BroadcastPlayers(sio, redisClient, machine)
	}

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API routes group
	api := router.Group("/")

	api.GET("/ping", controllers.Ping)

	api.POST("/identity", controllers.IssueIdentity())

	api.GET("/state", controllers.GetGameState(redisClient))

	api.GET("/players", controllers.ListPlayers(rosterSrv))

	authentication := api.Group("/auth")
	authentication.Use(middleware.AuthRequired)
	{
		authentication.GET("/me", controllers.Me())

		authentication.POST("/join", controllers.JoinGame(rosterSrv))
	}

	admin := api.Group("/admin")
	{
		admin.POST("/unlock", controllers.AdminUnlock(db))

		locked := admin.Group("/")
		locked.Use(middleware.AdminRequired)
		{
			locked.POST("/admins", controllers.AddAdmin(db))

			locked.POST("/host", controllers.ChooseHost(machine, notifyState))

			locked.DELETE("/host", controllers.ClearHost(machine, notifyState))

			locked.DELETE("/players/:id", controllers.DeletePlayer(rosterSrv, notifyPlayers))

			locked.DELETE("/players", controllers.ClearPlayers(rosterSrv, notifyPlayers))
		}
	}
}
