package httpdto

// UserDTO represents a user in API responses. The password hash never
// leaves the server.
type UserDTO struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	ProfilePhoto string `json:"profilephoto"`
}
