package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/projectrack-api/internal/models"
)

// GroupRepository provides database access for groups and their membership.
type GroupRepository struct {
	db *sqlx.DB
}

// NewGroupRepository creates a new instance of GroupRepository.
func NewGroupRepository(db *sqlx.DB) *GroupRepository {
	return &GroupRepository{db: db}
}

// Create inserts a group and registers the leader as its first member in a
// single transaction.
func (r *GroupRepository) Create(ctx context.Context, group *models.Group) (err error) {
	if group.ID == "" {
		group.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	group.CreatedAt = now
	group.UpdatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create group: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const insertGroup = `INSERT INTO groups (id, name, leader_id, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`
	if _, err = tx.ExecContext(ctx, insertGroup, group.ID, group.Name, group.LeaderID, group.CreatedAt, group.UpdatedAt); err != nil {
		return fmt.Errorf("insert group: %w", err)
	}

	const insertMember = `INSERT INTO group_members (group_id, user_id, created_at) VALUES ($1, $2, $3)`
	if _, err = tx.ExecContext(ctx, insertMember, group.ID, group.LeaderID, now); err != nil {
		return fmt.Errorf("insert leader membership: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit create group: %w", err)
	}
	return nil
}

// FindByID returns a group row by identifier.
func (r *GroupRepository) FindByID(ctx context.Context, id string) (*models.Group, error) {
	const query = `SELECT id, name, leader_id, created_at, updated_at FROM groups WHERE id = $1 LIMIT 1`
	var group models.Group
	if err := r.db.GetContext(ctx, &group, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find group by id: %w", err)
	}
	return &group, nil
}

// ExistsByName reports whether a group with the name already exists.
func (r *GroupRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	const query = `SELECT 1 FROM groups WHERE name = $1 LIMIT 1`
	var one int
	if err := r.db.GetContext(ctx, &one, query, name); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check group name exists: %w", err)
	}
	return true, nil
}

// ListMembers returns the member roster of a group.
func (r *GroupRepository) ListMembers(ctx context.Context, groupID string) ([]models.UserInfo, error) {
	const query = `SELECT u.id, u.name, u.email
FROM group_members gm
JOIN users u ON u.id = gm.user_id
WHERE gm.group_id = $1
ORDER BY gm.created_at ASC`
	var members []models.UserInfo
	if err := r.db.SelectContext(ctx, &members, query, groupID); err != nil {
		return nil, fmt.Errorf("list group members: %w", err)
	}
	return members, nil
}

// IsMember reports whether the user belongs to the group's member set.
func (r *GroupRepository) IsMember(ctx context.Context, groupID, userID string) (bool, error) {
	const query = `SELECT 1 FROM group_members WHERE group_id = $1 AND user_id = $2 LIMIT 1`
	var one int
	if err := r.db.GetContext(ctx, &one, query, groupID, userID); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check membership: %w", err)
	}
	return true, nil
}

// ListForUser returns groups led by or joined by the user, newest first.
// DISTINCT keeps a leader who is also a member down to one row.
func (r *GroupRepository) ListForUser(ctx context.Context, userID string) ([]models.Group, error) {
	const query = `SELECT DISTINCT g.id, g.name, g.leader_id, g.created_at, g.updated_at
FROM groups g
LEFT JOIN group_members gm ON gm.group_id = g.id
WHERE g.leader_id = $1 OR gm.user_id = $1
ORDER BY g.created_at DESC`
	var groups []models.Group
	if err := r.db.SelectContext(ctx, &groups, query, userID); err != nil {
		return nil, fmt.Errorf("list groups for user: %w", err)
	}
	return groups, nil
}
