package main

import (
	"log"
	"os"

	"github.com/aftershock-ministries/judas-backend/config"
	_ "github.com/aftershock-ministries/judas-backend/config/swagger"
	"github.com/aftershock-ministries/judas-backend/middleware"
	"github.com/aftershock-ministries/judas-backend/routes"
	"github.com/aftershock-ministries/judas-backend/services/game"
	"github.com/aftershock-ministries/judas-backend/services/redis"
	"github.com/aftershock-ministries/judas-backend/services/roster"
	"github.com/aftershock-ministries/judas-backend/services/socket_io"
	socketio_types "github.com/aftershock-ministries/judas-backend/services/socket_io/types"
	"github.com/aftershock-ministries/judas-backend/sync"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// @title Judas API
// @version 1.0
// @description Gin-Gonic server for the "Judas" game night backend
// @BasePath /
// @paths
func main() {
	godotenv.Load()
	log.Println("Setting up server...")

	if os.Getenv("PROD") == "true" {
		gin.SetMode(gin.ReleaseMode)
	}

	gormDB, err := config.ConnectGORM()
	if err != nil {
		log.Fatalf("Error connecting to PostgreSQL: %v", err)
	}
	log.Println("GORM Connected")

	// Only migrate in development or during deployment
	if os.Getenv("MIGRATE_POSTGRES") == "true" {
		log.Println("Migrating PostgreSQL database...")
		if err := config.MigrateDatabase(gormDB); err != nil {
			log.Printf("Warning: Database migration failed: %v", err)
			// Continue execution even if migration fails
		} else {
			log.Println("Database migrated successfully")
		}
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		log.Fatalf("Error reading GORM PostgreSQL instance: %v", err)
	}
	defer sqlDB.Close()

	redisClient, err := config.Connect_redis()
	if err != nil {
		log.Fatalf("Error connecting to Redis: %v", err)
	}
	log.Println("Connection to Redis successful")
	defer redis.CloseRedis(redisClient)

	// Seed the singleton state document if this is a fresh store
	if _, err := redisClient.EnsureGameState(); err != nil {
		log.Fatalf("Error seeding game state: %v", err)
	}

	rosterSrv := roster.NewGormRoster(gormDB)
	syncManager := sync.NewSyncManager(gormDB)
	machine := &game.Machine{
		Store:   redisClient,
		Roster:  rosterSrv,
		Archive: syncManager,
	}

	r := gin.Default()

	middleware.SetUpMiddleware(r)

	sio := &socket_io.JudasSocketServer{}
	sio.Start(r, redisClient, rosterSrv, machine)
	defer sio.Close()

	routes.SetupRoutes(r, gormDB, redisClient, rosterSrv, machine, (*socketio_types.SocketServer)(sio))

	// Configure port
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Error starting server: %v", err)
	}
}
