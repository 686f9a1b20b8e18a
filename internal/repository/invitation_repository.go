package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/projectrack-api/internal/models"
)

// ErrInvitationNotPending is returned when a terminal invitation is asked to
// change state again. The still-PENDING guard fires inside the transaction,
// so a concurrent second accept surfaces here rather than re-applying.
var ErrInvitationNotPending = errors.New("invitation is not pending")

// InvitationRepository provides database access for group invitations.
type InvitationRepository struct {
	db *sqlx.DB
}

// NewInvitationRepository creates a new instance of InvitationRepository.
func NewInvitationRepository(db *sqlx.DB) *InvitationRepository {
	return &InvitationRepository{db: db}
}

// Create inserts a pending invitation.
func (r *InvitationRepository) Create(ctx context.Context, inv *models.GroupInvitation) error {
	if inv.ID == "" {
		inv.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	inv.CreatedAt = now
	inv.UpdatedAt = now
	if inv.Status == "" {
		inv.Status = models.InvitationPending
	}

	const query = `INSERT INTO group_invitations (id, group_id, invited_user_id, inviter_id, status, created_at, updated_at)
VALUES (:id, :group_id, :invited_user_id, :inviter_id, :status, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, inv); err != nil {
		return fmt.Errorf("create invitation: %w", err)
	}
	return nil
}

// FindByID returns an invitation by identifier.
func (r *InvitationRepository) FindByID(ctx context.Context, id string) (*models.GroupInvitation, error) {
	const query = `SELECT id, group_id, invited_user_id, inviter_id, status, created_at, updated_at FROM group_invitations WHERE id = $1 LIMIT 1`
	var inv models.GroupInvitation
	if err := r.db.GetContext(ctx, &inv, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find invitation by id: %w", err)
	}
	return &inv, nil
}

// FindByGroupAndInvitee returns the invitation row for the pair, regardless
// of status. At most one such row can exist.
func (r *InvitationRepository) FindByGroupAndInvitee(ctx context.Context, groupID, invitedUserID string) (*models.GroupInvitation, error) {
	const query = `SELECT id, group_id, invited_user_id, inviter_id, status, created_at, updated_at FROM group_invitations WHERE group_id = $1 AND invited_user_id = $2 LIMIT 1`
	var inv models.GroupInvitation
	if err := r.db.GetContext(ctx, &inv, query, groupID, invitedUserID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find invitation by group and invitee: %w", err)
	}
	return &inv, nil
}

// ListPendingForUser returns pending invitations addressed to the user,
// newest first, with group and inviter identity attached.
func (r *InvitationRepository) ListPendingForUser(ctx context.Context, userID string) ([]models.GroupInvitation, error) {
	const query = `SELECT i.id, i.group_id, i.invited_user_id, i.inviter_id, i.status, i.created_at, i.updated_at,
       g.name AS group_name, u.name AS inviter_name
FROM group_invitations i
JOIN groups g ON g.id = i.group_id
JOIN users u ON u.id = i.inviter_id
WHERE i.invited_user_id = $1 AND i.status = 'PENDING'
ORDER BY i.created_at DESC`
	var invitations []models.GroupInvitation
	if err := r.db.SelectContext(ctx, &invitations, query, userID); err != nil {
		return nil, fmt.Errorf("list pending invitations: %w", err)
	}
	return invitations, nil
}

// Accept flips the invitation to ACCEPTED and adds the invitee to the group
// in one transaction. Both effects become visible together or not at all.
func (r *InvitationRepository) Accept(ctx context.Context, invitationID, groupID, invitedUserID string) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin accept invitation: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	now := time.Now().UTC()
	const updateQuery = `UPDATE group_invitations SET status = 'ACCEPTED', updated_at = $2 WHERE id = $1 AND status = 'PENDING'`
	result, err := tx.ExecContext(ctx, updateQuery, invitationID, now)
	if err != nil {
		return fmt.Errorf("accept invitation: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("accept invitation rows: %w", err)
	}
	if affected == 0 {
		err = ErrInvitationNotPending
		return err
	}

	const insertMember = `INSERT INTO group_members (group_id, user_id, created_at) VALUES ($1, $2, $3)`
	if _, err = tx.ExecContext(ctx, insertMember, groupID, invitedUserID, now); err != nil {
		return fmt.Errorf("add member on accept: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit accept invitation: %w", err)
	}
	return nil
}

// Reject flips a pending invitation to REJECTED. Membership is untouched.
func (r *InvitationRepository) Reject(ctx context.Context, invitationID string) error {
	const query = `UPDATE group_invitations SET status = 'REJECTED', updated_at = $2 WHERE id = $1 AND status = 'PENDING'`
	result, err := r.db.ExecContext(ctx, query, invitationID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("reject invitation: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("reject invitation rows: %w", err)
	}
	if affected == 0 {
		return ErrInvitationNotPending
	}
	return nil
}
