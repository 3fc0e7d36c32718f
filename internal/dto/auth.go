package dto

// LoginRequest is the payload for password login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued token and the authenticated identity.
type LoginResponse struct {
	AccessToken string   `json:"accessToken"`
	Email       string   `json:"email"`
	Name        string   `json:"name"`
	Roles       []string `json:"roles"`
}

// GoogleExchangeCodeRequest carries an OAuth authorization code from the SPA.
type GoogleExchangeCodeRequest struct {
	Code string `json:"code" binding:"required"`
}
