package service

import "github.com/noah-isme/projectrack-api/internal/models"

// Authorization predicates over already-loaded entities. All are pure; the
// workflow services call them before any mutation, and a false answer maps
// to a Forbidden error with no partial write.

// IsGroupLeader reports whether the user leads the group.
func IsGroupLeader(user *models.User, group *models.Group) bool {
	return user != nil && group != nil && group.LeaderID == user.ID
}

// IsGroupMember reports whether the user belongs to the group. Leadership
// counts: the leader is always also a member.
func IsGroupMember(user *models.User, group *models.Group) bool {
	if user == nil || group == nil {
		return false
	}
	return group.HasMember(user.ID)
}

// IsProjectParticipant reports whether the user may see the project: a
// member or leader of the owning group, or the assigned supervisor.
func IsProjectParticipant(user *models.User, project *models.Project, group *models.Group) bool {
	if user == nil || project == nil {
		return false
	}
	if project.SupervisorID == user.ID {
		return true
	}
	return IsGroupMember(user, group)
}

// IsProjectWorkable reports whether milestones and submissions may be
// mutated. APPROVED and ACTIVE are the only workable states; nothing in the
// workflow sets ACTIVE, but the value remains accepted.
func IsProjectWorkable(project *models.Project) bool {
	if project == nil {
		return false
	}
	return project.Status == models.ProjectApproved || project.Status == models.ProjectActive
}
