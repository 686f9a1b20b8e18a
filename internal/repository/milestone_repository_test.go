package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/projectrack-api/internal/models"
)

func TestMilestoneListByProjectAscending(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewMilestoneRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "project_id", "title", "description", "due_date", "is_completed", "last_updated_by_user_id", "created_at", "updated_at"}).
		AddRow("m1", "p1", "First", nil, nil, true, nil, now.Add(-time.Hour), now).
		AddRow("m2", "p1", "Second", nil, nil, false, nil, now, now)
	mock.ExpectQuery(regexp.QuoteMeta("FROM milestones WHERE project_id = $1 ORDER BY created_at ASC")).
		WithArgs("p1").
		WillReturnRows(rows)

	milestones, err := repo.ListByProject(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, milestones, 2)
	assert.Equal(t, "First", milestones[0].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMilestoneCountByProject(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewMilestoneRepository(db)

	rows := sqlmock.NewRows([]string{"total", "completed"}).AddRow(4, 3)
	mock.ExpectQuery("SELECT COUNT").WithArgs("p1").WillReturnRows(rows)

	total, completed, err := repo.CountByProject(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, 4, total)
	assert.Equal(t, 3, completed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMilestoneUpdate(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewMilestoneRepository(db)

	mock.ExpectExec("UPDATE milestones SET title").WillReturnResult(sqlmock.NewResult(0, 1))

	userID := "u1"
	milestone := &models.Milestone{ID: "m1", ProjectID: "p1", Title: "Revised", LastUpdatedByUserID: &userID}
	err := repo.Update(context.Background(), milestone)
	require.NoError(t, err)
	assert.False(t, milestone.UpdatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}
