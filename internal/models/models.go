package models

type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

var Roles = []Role{RoleAdmin, RoleUser}

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleUser:
		return true
	default:
		return false
	}
}

// Account is the persisted record. Password holds a bcrypt hash and is NULL
// for accounts that cannot log in with a password.
type Account struct {
	ID       uint    `gorm:"primaryKey;autoIncrement"       json:"id"`
	Email    string  `gorm:"uniqueIndex;not null;size:320"  json:"email"`
	Role     Role    `gorm:"type:varchar(32);not null"      json:"role"`
	Password *string `gorm:"column:password"                json:"-"`
	IsActive bool    `gorm:"not null;default:true"          json:"isActive"`
}

func (Account) TableName() string {
	return "accounts"
}
