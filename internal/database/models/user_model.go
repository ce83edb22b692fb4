package models

type UserRole string

const (
	UserRoleAdmin UserRole = "admin"
	UserRoleQA    UserRole = "qa"
	UserRoleDev   UserRole = "dev"
)

func (r UserRole) Valid() bool {
	switch r {
	case UserRoleAdmin, UserRoleQA, UserRoleDev:
		return true
	}
	return false
}

// User is an account. Users are never hard-deleted since projects and
// runs reference their creator.
type User struct {
	Model
	// stored lowercased - email lookups are case-insensitive
	Email        string   `json:"email" gorm:"type:text;uniqueIndex;not null"`
	PasswordHash string   `json:"-" gorm:"type:text;not null"`
	Role         UserRole `json:"role" gorm:"type:text;not null;default:'dev'"`
}

func (m User) TableName() string {
	return "users"
}
