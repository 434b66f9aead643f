package entity

// SearchFilter is a domain-level filter for the admin search page.
// Used by repository layer to avoid coupling with delivery DTOs.
type SearchFilter struct {
	Query string // matched against account logins and patient names (LIKE)
	Role  Role   // optional, restricts accounts to one role
	Limit int
}
