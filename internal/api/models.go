package api

// Login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
type LoginResponse struct {
	Token string `json:"token"`
}

// User administration
type CreateUserRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}
type UserFlagsRequest struct {
	Settings      bool `json:"settings"`
	Authorisation bool `json:"authorisation"`
	Analytics     bool `json:"analytics"`
}
type UserResponse struct {
	ID            int    `json:"id"`
	Email         string `json:"email"`
	Name          string `json:"name,omitempty"`
	Settings      bool   `json:"settings"`
	Authorisation bool   `json:"authorisation"`
	Analytics     bool   `json:"analytics"`
}
