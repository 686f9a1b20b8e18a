package models

import "time"

// Group represents a student group. The leader is always also a member.
type Group struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	LeaderID  string    `db:"leader_id" json:"leader_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`

	Leader  *UserInfo  `db:"-" json:"leader,omitempty"`
	Members []UserInfo `db:"-" json:"members,omitempty"`
}

// HasMember reports whether the user appears in the loaded member set or
// leads the group.
func (g *Group) HasMember(userID string) bool {
	if g == nil {
		return false
	}
	if g.LeaderID == userID {
		return true
	}
	for _, m := range g.Members {
		if m.ID == userID {
			return true
		}
	}
	return false
}

// InvitationStatus captures the invitation lifecycle.
type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "PENDING"
	InvitationAccepted InvitationStatus = "ACCEPTED"
	InvitationRejected InvitationStatus = "REJECTED"
)

// InvitationAction is the recipient's response to a pending invitation.
type InvitationAction string

const (
	InvitationActionAccept InvitationAction = "ACCEPT"
	InvitationActionReject InvitationAction = "REJECT"
)

// GroupInvitation links a group to an invited student. At most one row may
// ever exist per (group_id, invited_user_id); terminal rows are kept and
// block re-invitation.
type GroupInvitation struct {
	ID            string           `db:"id" json:"id"`
	GroupID       string           `db:"group_id" json:"group_id"`
	InvitedUserID string           `db:"invited_user_id" json:"invited_user_id"`
	InviterID     string           `db:"inviter_id" json:"inviter_id"`
	Status        InvitationStatus `db:"status" json:"status"`
	CreatedAt     time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time        `db:"updated_at" json:"updated_at"`

	GroupName   *string `db:"group_name" json:"group_name,omitempty"`
	InviterName *string `db:"inviter_name" json:"inviter_name,omitempty"`
	InvitedName *string `db:"invited_name" json:"invited_name,omitempty"`
}
