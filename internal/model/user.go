package model

// Roles assigned to a session at login.  The role is fixed for the
// lifetime of the session; there is no role escalation.
const (
	RoleUser  = "USER"  // standard viewer account
	RoleAdmin = "ADMIN" // catalog manager account
)

// User is the current session's identity record.  Exactly one User exists
// at a time; it is created at login, destroyed at logout and persisted as
// a single JSON record under the "session.user" key.
//
// Fields:
//  ID        – stable identifier of the mock account ("user1" or "admin1").
//  Email     – login email.
//  Role      – RoleUser or RoleAdmin.
//  Purchased – set of purchased video IDs.  The set only grows; refunds
//              are not modeled.
type User struct {
	ID        string          `json:"id"`
	Email     string          `json:"email"`
	Role      string          `json:"role"`
	Purchased map[string]bool `json:"purchased"`
}

// IsAdmin reports whether the record carries the admin role.
func (u User) IsAdmin() bool { return u.Role == RoleAdmin }

// HasPurchased reports whether videoID is in the purchase set.
func (u User) HasPurchased(videoID string) bool { return u.Purchased[videoID] }
