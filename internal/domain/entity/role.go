package entity

import "database/sql/driver"

// Role is the access level stored on an account. An account holds exactly one
// role, fixed when its role profile is created.
type Role string

const (
	RolePatient      Role = "patient"
	RoleHealthWorker Role = "health_worker"
	RoleExpert       Role = "expert"
	RoleAdmin        Role = "admin"
)

// Roles lists every role in display order.
var Roles = []Role{RolePatient, RoleHealthWorker, RoleExpert, RoleAdmin}

func (r Role) Valid() bool {
	switch r {
	case RolePatient, RoleHealthWorker, RoleExpert, RoleAdmin:
		return true
	}
	return false
}

// Value implements driver.Valuer and refuses to persist unknown roles.
func (r Role) Value() (driver.Value, error) {
	return enumValue(r)
}

// Label returns the human readable role name.
func (r Role) Label() string {
	switch r {
	case RolePatient:
		return "Patient"
	case RoleHealthWorker:
		return "Health Worker"
	case RoleExpert:
		return "Expert"
	case RoleAdmin:
		return "Admin"
	}
	return string(r)
}
