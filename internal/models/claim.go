package models

// Claim lifecycle statuses as stored in the claims table.
const (
	StatusPending   = "Pending"
	StatusCompleted = "Completed"
	StatusCancelled = "Cancelled"
)

// ValidStatus reports whether s is one of the three claim statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}
