package entity

import "time"

// Account is the authenticable identity shared by every role. Role profiles
// reference it through their AccountID column.
type Account struct {
	ID        uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Login     string     `gorm:"column:login_username;type:varchar(150);uniqueIndex;not null" json:"login"`
	Password  string     `gorm:"type:varchar(255);not null" json:"-"`
	Role      Role       `gorm:"column:access_level;type:varchar(32);not null;index;<-:create" json:"role"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}

func (Account) TableName() string {
	return "app_users"
}
