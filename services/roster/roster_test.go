package roster

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockRoster(t *testing.T) (*GormRoster, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(pgdriver.New(pgdriver.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return NewGormRoster(gormDB), mock
}

func playerRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "first_name", "uid", "alive", "role", "status", "joined_at"})
}

func TestJoinIsIdempotentForSameIdentity(t *testing.T) {
	roster, mock := newMockRoster(t)

	mock.ExpectQuery(`SELECT \* FROM "players" WHERE uid = \$1 AND first_name = \$2`).
		WithArgs("uid-1", "Peter", 1).
		WillReturnRows(playerRows().
			AddRow("p1", "Peter", "uid-1", true, "", "idle", time.Now().UTC()))

	player, err := roster.Join("Peter", "uid-1")
	require.NoError(t, err)
	assert.Equal(t, "p1", player.ID)
	assert.Equal(t, "Peter", player.FirstName)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlayersListsInJoinOrder(t *testing.T) {
	roster, mock := newMockRoster(t)
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT \* FROM "players" ORDER BY joined_at asc`).
		WillReturnRows(playerRows().
			AddRow("p1", "Peter", "uid-1", true, "", "idle", now).
			AddRow("p2", "Thomas", "uid-2", false, "judas", "idle", now.Add(time.Second)))

	players, err := roster.Players()
	require.NoError(t, err)
	require.Len(t, players, 2)
	assert.Equal(t, "Peter", players[0].FirstName)
	assert.Equal(t, "Thomas", players[1].FirstName)
	assert.False(t, players[1].Alive)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlayerByNameIsCaseInsensitive(t *testing.T) {
	roster, mock := newMockRoster(t)

	mock.ExpectQuery(`SELECT \* FROM "players" WHERE LOWER\(first_name\) = \$1`).
		WithArgs("peter", 1).
		WillReturnRows(playerRows().
			AddRow("p1", "Peter", "uid-1", true, "", "idle", time.Now().UTC()))

	player, err := roster.PlayerByName("PETER")
	require.NoError(t, err)
	require.NotNil(t, player)
	assert.Equal(t, "p1", player.ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlayerByNameNotFoundIsNil(t *testing.T) {
	roster, mock := newMockRoster(t)

	mock.ExpectQuery(`SELECT \* FROM "players" WHERE LOWER\(first_name\) = \$1`).
		WithArgs("nobody", 1).
		WillReturnRows(playerRows())

	player, err := roster.PlayerByName("Nobody")
	require.NoError(t, err)
	assert.Nil(t, player)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetAlive(t *testing.T) {
	roster, mock := newMockRoster(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "players" SET "alive"=\$1 WHERE id = \$2`).
		WithArgs(false, "p1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, roster.SetAlive("p1", false))
	assert.NoError(t, mock.ExpectationsWereMet())
}
