package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/projectrack-api/internal/models"
)

func projectRows(now time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "title", "description", "group_id", "proposed_by_id", "supervisor_id", "status", "rejection_reason", "approved_at", "created_at", "updated_at"}).
		AddRow("p1", "Thesis", "A thesis project", "g1", "u1", "t1", string(models.ProjectProposed), nil, nil, now, now)
}

func TestProjectFindByGroupID(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewProjectRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM projects WHERE group_id = $1 LIMIT 1")).
		WithArgs("g1").
		WillReturnRows(projectRows(time.Now()))

	project, err := repo.FindByGroupID(context.Background(), "g1")
	require.NoError(t, err)
	assert.Equal(t, "p1", project.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectFindByGroupIDNoRows(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewProjectRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM projects WHERE group_id = $1 LIMIT 1")).
		WithArgs("g9").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByGroupID(context.Background(), "g9")
	require.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectUpdateDecisionGuardsProposedState(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewProjectRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("WHERE id = $1 AND status = 'PROPOSED'")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateDecision(context.Background(), "p1", models.ProjectApproved, nil, nil)
	require.ErrorIs(t, err, ErrProjectNotProposed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectUpdateDecisionApproved(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewProjectRepository(db)

	mock.ExpectExec("UPDATE projects SET status").WillReturnResult(sqlmock.NewResult(0, 1))

	now := time.Now().UTC()
	err := repo.UpdateDecision(context.Background(), "p1", models.ProjectApproved, nil, &now)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectListBySupervisor(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewProjectRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE supervisor_id = $1 ORDER BY created_at DESC")).
		WithArgs("t1").
		WillReturnRows(projectRows(time.Now()))

	projects, err := repo.ListBySupervisor(context.Background(), "t1")
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "t1", projects[0].SupervisorID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
