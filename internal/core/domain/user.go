package domain

// User is an actor supplied by the identity provider. The core never mutates
// users; the email is the unique identity recorded on approvals and history.
type User struct {
	Email        string   `json:"email"`
	Name         string   `json:"name"`
	Roles        []string `json:"roles"` // role keys, resolved against the role table
	PasswordHash string   `json:"-"`
}

// HasAnyRole reports whether the user holds at least one of the given role keys.
func (u *User) HasAnyRole(roleIDs []string) bool {
	for _, want := range roleIDs {
		for _, have := range u.Roles {
			if have == want {
				return true
			}
		}
	}
	return false
}
