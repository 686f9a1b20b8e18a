package dto

// CreateGroupRequest names a new group; the caller becomes leader and first
// member.
type CreateGroupRequest struct {
	Name string `json:"name" validate:"required"`
}

// InviteMemberRequest invites a registered student by email.
type InviteMemberRequest struct {
	InvitedUserEmail string `json:"invited_user_email" validate:"required,email"`
}

// RespondInvitationRequest carries the recipient's decision.
type RespondInvitationRequest struct {
	Action string `json:"action" validate:"required,oneof=ACCEPT REJECT"`
}
