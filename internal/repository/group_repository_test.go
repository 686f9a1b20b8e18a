package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/projectrack-api/internal/models"
)

func TestGroupCreateCommitsGroupAndLeaderMembership(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewGroupRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO groups").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO group_members").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	group := &models.Group{Name: "Team Rocket", LeaderID: "u1"}
	err := repo.Create(context.Background(), group)
	require.NoError(t, err)
	assert.NotEmpty(t, group.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGroupCreateRollsBackOnMemberInsertFailure(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewGroupRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO groups").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO group_members").WillReturnError(errors.New("constraint violation"))
	mock.ExpectRollback()

	err := repo.Create(context.Background(), &models.Group{Name: "Team Rocket", LeaderID: "u1"})
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGroupListForUser(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewGroupRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "name", "leader_id", "created_at", "updated_at"}).
		AddRow("g2", "Newer", "u1", now, now).
		AddRow("g1", "Older", "u2", now.Add(-time.Hour), now.Add(-time.Hour))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT DISTINCT g.id, g.name, g.leader_id, g.created_at, g.updated_at")).
		WithArgs("u1").
		WillReturnRows(rows)

	groups, err := repo.ListForUser(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "Newer", groups[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGroupIsMemberFalseOnNoRows(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewGroupRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM group_members WHERE group_id = $1 AND user_id = $2 LIMIT 1")).
		WithArgs("g1", "u9").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}))

	ok, err := repo.IsMember(context.Background(), "g1", "u9")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}
