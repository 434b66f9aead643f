package entity

// HealthWorker is the role profile of a field health worker. Health workers
// are created by admins, look after patients and upload their x-rays.
type HealthWorker struct {
	ID               uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	AccountID        uint   `gorm:"column:user_id;uniqueIndex;not null" json:"account_id"`
	Name             string `gorm:"type:varchar(150);not null" json:"name"`
	AppointedCountry string `gorm:"type:varchar(100);not null" json:"appointed_country"`
	AppointedClinic  string `gorm:"type:varchar(100);not null" json:"appointed_clinic"`
	ContactDetails   string `gorm:"type:varchar(200);uniqueIndex;not null" json:"contact_details"`

	// Relationships
	Account Account `gorm:"foreignKey:AccountID" json:"-"`
}

func (HealthWorker) TableName() string {
	return "health_workers"
}
