package controllers

import (
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/aftershock-ministries/judas-backend/middleware"
	"github.com/aftershock-ministries/judas-backend/models/postgres"
	"github.com/aftershock-ministries/judas-backend/services/game"
	"github.com/aftershock-ministries/judas-backend/services/roster"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// @Summary Unlocks the admin console
// @Description Checks the first name + passphrase against the admins table. The name in ADMIN_SEED self-seeds on first unlock, like the original console did for its owner.
// @Tags admin
// @Accept json
// @Produce json
// @Success 200 {object} object{message=string}
// @Failure 400 {object} object{error=string}
// @Failure 401 {object} object{error=string}
// @Router /admin/unlock [post]
func AdminUnlock(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			FirstName  string `json:"firstName"`
			Passphrase string `json:"passphrase"`
		}
		if err := c.ShouldBindJSON(&body); err != nil || strings.TrimSpace(body.FirstName) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Enter your first name."})
			return
		}
		name := strings.ToLower(strings.TrimSpace(body.FirstName))

		var admin postgres.Admin
		err := db.Where("first_name = ?", name).First(&admin).Error
		if err == gorm.ErrRecordNotFound {
			// Seed the configured owner on first unlock
			if name != strings.ToLower(os.Getenv("ADMIN_SEED")) || os.Getenv("ADMIN_SEED") == "" {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Not an admin. Ask the owner to add you."})
				return
			}
			hash, hashErr := bcrypt.GenerateFromPassword([]byte(body.Passphrase), bcrypt.DefaultCost)
			if hashErr != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Error seeding admin"})
				return
			}
			admin = postgres.Admin{FirstName: name, PassphraseHash: string(hash), CreatedBy: "system"}
			if err := db.Create(&admin).Error; err != nil {
				log.Printf("[ADMIN-ERROR] Error seeding admin: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Error seeding admin"})
				return
			}
		} else if err != nil {
			log.Printf("[ADMIN-ERROR] %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error checking admin"})
			return
		} else if bcrypt.CompareHashAndPassword([]byte(admin.PassphraseHash), []byte(body.Passphrase)) != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Wrong passphrase"})
			return
		}

		if err := middleware.MarkAdminSession(c, name); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error saving session"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Admin unlocked."})
	}
}

// @Summary Adds an admin
// @Tags admin
// @Accept json
// @Produce json
// @Success 200 {object} object{message=string}
// @Failure 400 {object} object{error=string}
// @Router /admin/admins [post]
func AddAdmin(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			FirstName  string `json:"firstName"`
			Passphrase string `json:"passphrase"`
		}
		if err := c.ShouldBindJSON(&body); err != nil || strings.TrimSpace(body.FirstName) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "First name is required"})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Passphrase), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error hashing passphrase"})
			return
		}
		admin := postgres.Admin{
			FirstName:      strings.ToLower(strings.TrimSpace(body.FirstName)),
			PassphraseHash: string(hash),
			CreatedBy:      middleware.AdminFromSession(c),
		}
		if err := db.Create(&admin).Error; err != nil {
			log.Printf("[ADMIN-ERROR] Error adding admin: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error adding admin"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Admin added"})
	}
}

// @Summary Chooses the host
// @Description Records the host and mints the capability token that authorizes every phase transition. The console shows the token to the chosen host.
// @Tags admin
// @Accept json
// @Produce json
// @Success 200 {object} object{hostToken=string}
// @Failure 400 {object} object{error=string}
// @Router /admin/host [post]
func ChooseHost(machine *game.Machine, notify func()) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			FirstName string `json:"firstName"`
		}
		if err := c.ShouldBindJSON(&body); err != nil || strings.TrimSpace(body.FirstName) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "First name is required"})
			return
		}

		token, err := machine.SetHost(strings.TrimSpace(body.FirstName))
		if err != nil {
			log.Printf("[ADMIN-ERROR] Error choosing host: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error choosing host"})
			return
		}
		if notify != nil {
			notify()
		}
		c.JSON(http.StatusOK, gin.H{"hostToken": token})
	}
}

// @Summary Clears the host
// @Tags admin
// @Produce json
// @Success 200 {object} object{message=string}
// @Router /admin/host [delete]
func ClearHost(machine *game.Machine, notify func()) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := machine.ClearHost(); err != nil {
			log.Printf("[ADMIN-ERROR] Error clearing host: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error clearing host"})
			return
		}
		if notify != nil {
			notify()
		}
		c.JSON(http.StatusOK, gin.H{"message": "Host cleared"})
	}
}

// @Summary Deletes a player
// @Tags admin
// @Produce json
// @Param id path string true "Player id"
// @Success 200 {object} object{message=string}
// @Router /admin/players/{id} [delete]
func DeletePlayer(rosterSrv *roster.GormRoster, notify func()) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := rosterSrv.DeletePlayer(c.Param("id")); err != nil {
			log.Printf("[ADMIN-ERROR] Error deleting player: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting player"})
			return
		}
		if notify != nil {
			notify()
		}
		c.JSON(http.StatusOK, gin.H{"message": "Player deleted"})
	}
}

// @Summary Clears the whole roster
// @Tags admin
// @Produce json
// @Success 200 {object} object{message=string}
// @Router /admin/players [delete]
func ClearPlayers(rosterSrv *roster.GormRoster, notify func()) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := rosterSrv.ClearPlayers(); err != nil {
			log.Printf("[ADMIN-ERROR] Error clearing players: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error clearing players"})
			return
		}
		if notify != nil {
			notify()
		}
		c.JSON(http.StatusOK, gin.H{"message": "Players cleared"})
	}
}
