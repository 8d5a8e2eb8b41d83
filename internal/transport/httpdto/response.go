package httpdto

// MessageResponse is the envelope every status-only endpoint returns.
type MessageResponse struct {
	Message string `json:"message"`
}
