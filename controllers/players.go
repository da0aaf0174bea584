package controllers

import (
	"log"
	"net/http"
	"strings"

	game_constants "github.com/aftershock-ministries/judas-backend/constants/game"
	"github.com/aftershock-ministries/judas-backend/middleware"
	"github.com/aftershock-ministries/judas-backend/services/roster"

	"github.com/gin-gonic/gin"
)

// @Summary Lists the roster
// @Description Returns all joined players in join order. Roles are omitted here, the socket layer decides what each client may see.
// @Tags players
// @Produce json
// @Success 200 {array} object{id=string,firstName=string,alive=boolean}
// @Failure 500 {object} object{error=string}
// @Router /players [get]
func ListPlayers(rosterSrv *roster.GormRoster) gin.HandlerFunc {
	return func(c *gin.Context) {
		players, err := rosterSrv.Players()
		if err != nil {
			log.Printf("[PLAYERS-ERROR] %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing players"})
			return
		}

		view := make([]gin.H, 0, len(players))
		for _, p := range players {
			view = append(view, gin.H{
				"id":        p.ID,
				"firstName": p.FirstName,
				"alive":     p.Alive,
				"joinedAt":  p.JoinedAt,
			})
		}
		c.JSON(http.StatusOK, view)
	}
}

// @Summary Joins the game
// @Description Creates a player for the calling identity. Duplicate first names are tolerated; rejoining with the same name is idempotent.
// @Tags players
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer identity token"
// @Success 200 {object} object{player=object}
// @Failure 400 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /auth/join [post]
// @Security ApiKeyAuth
func JoinGame(rosterSrv *roster.GormRoster) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			FirstName string `json:"firstName"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "First name is required"})
			return
		}

		firstName := strings.TrimSpace(body.FirstName)
		if firstName == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "First name is required"})
			return
		}
		if len(firstName) > game_constants.MaxFirstNameLength {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Keep the first name under 24 characters"})
			return
		}

		player, err := rosterSrv.Join(firstName, middleware.UIDFromContext(c))
		if err != nil {
			log.Printf("[JOIN-ERROR] %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not join. Try again."})
			return
		}
		c.JSON(http.StatusOK, gin.H{"player": player})
	}
}
