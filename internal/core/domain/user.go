package domain

// User is a backoffice actor. Capabilities are stored separately and looked up
// through the capability port; the user row only carries identity.
type User struct {
	UserID       string `json:"userId"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	AuditFields
}
