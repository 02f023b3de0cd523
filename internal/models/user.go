package models

// RoleAdmin is the only role issued today; every organization gets exactly one
// admin user at creation time.
const RoleAdmin = "admin"

// User is an organization member. Organization stores the organization *name*
// rather than its id; renames must rewrite it to keep the reference valid.
// Email is the login key but carries no uniqueness constraint.
type User struct {
	BaseModel

	Email        string `gorm:"index;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	Organization string `gorm:"index;not null" json:"organization"`
	Role         string `gorm:"not null;default:admin" json:"role"`
}
