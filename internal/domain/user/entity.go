package user

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"    // Manages shifts, schedules, settings and corrections
	RoleEmployee Role = "employee" // Clocks in and out
)

type User struct {
	ID           string
	Name         string
	Username     string
	PasswordHash string
	Role         Role
	CategoryID   *string
	EmployeeCode *string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin checks if user has the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
