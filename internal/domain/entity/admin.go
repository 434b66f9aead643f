package entity

// Admin is the role profile of an administrator.
type Admin struct {
	ID             uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	AccountID      uint   `gorm:"column:user_id;uniqueIndex;not null" json:"account_id"`
	ContactDetails string `gorm:"type:varchar(200);uniqueIndex;not null" json:"contact_details"`

	// Relationships
	Account Account `gorm:"foreignKey:AccountID" json:"-"`
}

func (Admin) TableName() string {
	return "admins"
}
