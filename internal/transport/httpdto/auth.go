package httpdto

// CreateAccountRequest is used for POST /createaccount
type CreateAccountRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	Username     string `json:"username"`
	ProfilePhoto string `json:"profilephoto"`
	IsVerified   bool   `json:"isVerified"`
}

// LoginRequest is used for POST /login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned after successful login
type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	UserID  string `json:"userId"`
}

// DecodeRequest is used for POST /decode
type DecodeRequest struct {
	Token string `json:"token"`
}

// DecodeResponse is returned after successful token decode
type DecodeResponse struct {
	UserID         string `json:"userId"`
	Username       string `json:"username"`
	ProfilePicture string `json:"profilePicture"`
}
