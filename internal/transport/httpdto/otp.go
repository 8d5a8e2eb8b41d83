package httpdto

// SendOTPRequest is used for POST /send-otp
type SendOTPRequest struct {
	Email string `json:"email"`
}

// VerifyOTPRequest is used for POST /verify-otp
type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}
