package controllers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aftershock-ministries/judas-backend/controllers"
	"github.com/aftershock-ministries/judas-backend/services/roster"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockRoster(t *testing.T) (*roster.GormRoster, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(pgdriver.New(pgdriver.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return roster.NewGormRoster(gormDB), mock
}

func TestListPlayers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rosterSrv, mock := newMockRoster(t)

	now := time.Now().UTC()
	mock.ExpectQuery(`SELECT \* FROM "players" ORDER BY joined_at asc`).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "first_name", "uid", "alive", "role", "status", "joined_at"}).
			AddRow("p1", "Peter", "uid-1", true, "judas", "idle", now).
			AddRow("p2", "Thomas", "uid-2", false, "disciple", "idle", now.Add(time.Second)))

	router := gin.New()
	router.GET("/players", controllers.ListPlayers(rosterSrv))

	req, _ := http.NewRequest(http.MethodGet, "/players", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response, 2)
	assert.Equal(t, "Peter", response[0]["firstName"])
	assert.Equal(t, true, response[0]["alive"])
	assert.Equal(t, "Thomas", response[1]["firstName"])

	// Roles never leak through the REST roster view
	_, hasRole := response[0]["role"]
	assert.False(t, hasRole)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJoinGameValidatesFirstName(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rosterSrv, mock := newMockRoster(t)

	router := gin.New()
	router.POST("/auth/join", func(c *gin.Context) {
		c.Set("uid", "uid-1")
		controllers.JoinGame(rosterSrv)(c)
	})

	cases := []string{
		`{}`,
		`{"firstName": "   "}`,
		`{"firstName": "` + strings.Repeat("x", 40) + `"}`,
	}
	for _, body := range cases {
		req, _ := http.NewRequest(http.MethodPost, "/auth/join", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body %s", body)
	}

	// No database call may happen for rejected joins
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJoinGameReturnsExistingPlayer(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rosterSrv, mock := newMockRoster(t)

	mock.ExpectQuery(`SELECT \* FROM "players" WHERE uid = \$1 AND first_name = \$2`).
		WithArgs("uid-1", "Peter", 1).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "first_name", "uid", "alive", "role", "status", "joined_at"}).
			AddRow("p1", "Peter", "uid-1", true, "", "idle", time.Now().UTC()))

	router := gin.New()
	router.POST("/auth/join", func(c *gin.Context) {
		c.Set("uid", "uid-1")
		controllers.JoinGame(rosterSrv)(c)
	})

	req, _ := http.NewRequest(http.MethodPost, "/auth/join", strings.NewReader(`{"firstName": "Peter"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Player struct {
			ID        string `json:"id"`
			FirstName string `json:"firstName"`
		} `json:"player"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "p1", response.Player.ID)
	assert.Equal(t, "Peter", response.Player.FirstName)

	assert.NoError(t, mock.ExpectationsWereMet())
}
