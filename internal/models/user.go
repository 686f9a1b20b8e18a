package models

import (
	"time"

	"github.com/lib/pq"
)

// UserRole represents the available account roles.
type UserRole string

const (
	RoleStudent UserRole = "STUDENT"
	RoleTeacher UserRole = "TEACHER"
)

// User represents an application user stored in the users table.
// Role-specific columns are nullable: roll_number/program/year belong to
// students, department/areas_of_expertise to teachers.
type User struct {
	ID               string         `db:"id" json:"id"`
	Email            string         `db:"email" json:"email"`
	PasswordHash     string         `db:"password_hash" json:"-"`
	Name             string         `db:"name" json:"name"`
	Role             UserRole       `db:"role" json:"role"`
	RollNumber       *string        `db:"roll_number" json:"roll_number,omitempty"`
	Program          *string        `db:"program" json:"program,omitempty"`
	Year             *int           `db:"year" json:"year,omitempty"`
	Department       *string        `db:"department" json:"department,omitempty"`
	AreasOfExpertise pq.StringArray `db:"areas_of_expertise" json:"areas_of_expertise,omitempty"`
	CreatedAt        time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at" json:"updated_at"`
}

// IsStudent reports whether the user holds the STUDENT role.
func (u *User) IsStudent() bool {
	return u != nil && u.Role == RoleStudent
}

// IsTeacher reports whether the user holds the TEACHER role.
func (u *User) IsTeacher() bool {
	return u != nil && u.Role == RoleTeacher
}

// UserInfo is the compact identity embedded in related resources.
type UserInfo struct {
	ID    string `db:"id" json:"id"`
	Name  string `db:"name" json:"name"`
	Email string `db:"email" json:"email"`
}

// Info returns the compact representation of the user.
func (u *User) Info() UserInfo {
	return UserInfo{ID: u.ID, Name: u.Name, Email: u.Email}
}
