package user

import "time"

type Role string

const (
	RoleManager   Role = "manager"    // Internal manager - final approval authority
	RoleCrewChief Role = "crew_chief" // Leads a crew on site, submits timesheets
	RoleClient    Role = "client"     // Client company representative
)

type User struct {
	ID           string
	Email        string
	PasswordHash string
	FullName     string
	Role         Role
	EmployeeID   *string // set for crew chiefs
	ClientID     *string // set for client users
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsCrewChief checks if user leads crews on site
func (u *User) IsCrewChief() bool {
	return u.Role == RoleCrewChief
}
