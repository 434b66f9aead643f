package entity

// Expert is the role profile of a radiology expert who reviews scans,
// prescribes treatments and writes diagnostic reports.
type Expert struct {
	ID             uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	AccountID      uint   `gorm:"column:user_id;uniqueIndex;not null" json:"account_id"`
	Name           string `gorm:"type:varchar(150);not null" json:"name"`
	ContactDetails string `gorm:"type:varchar(200);uniqueIndex;not null" json:"contact_details"`
	Speciality     string `gorm:"type:varchar(150);not null" json:"speciality"`
	Country        string `gorm:"type:varchar(100);not null" json:"country"`
	Clinic         string `gorm:"type:varchar(100);not null" json:"clinic"`

	// Relationships
	Account Account `gorm:"foreignKey:AccountID" json:"-"`
}

func (Expert) TableName() string {
	return "experts"
}
