package model

import "time"

type Role string

const (
	RoleStudent Role = "STUDENT"
	RoleFaculty Role = "FACULTY"
	RoleAlumni  Role = "ALUMNI"
)

// User holds the local account data relevant to the application (outside of firebase)
type User struct {
	Id            string     `db:"firebase_id" json:"id"`
	Username      string     `db:"username" json:"username"`
	DisplayName   string     `db:"display_name" json:"displayName"`
	Bio           string     `db:"bio" json:"bio"`
	Role          Role       `db:"role" json:"role"`
	ProgramId     int64      `db:"program_id" json:"programId"`
	IsAdmin       bool       `db:"is_admin" json:"isAdmin"`
	Avatar        string     `db:"avatar" json:"avatar"`
	VerifiedAt    *time.Time `db:"verified_at" json:"verifiedAt"`
	BannedAt      *time.Time `db:"banned_at" json:"bannedAt"`
	DeactivatedAt *time.Time `db:"deactivated_at" json:"deactivatedAt"`
	CreatedAt     time.Time  `db:"created_at" json:"createdAt"`
}

// IsActive reports whether the account may act on the platform. Accounts are
// never hard-deleted; bans and deactivations are flags.
func (u *User) IsActive() bool {
	return u.BannedAt == nil && u.DeactivatedAt == nil
}
