package dto

// OnboardingRequest creates the first super admin.
type OnboardingRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LogoutRequest carries the sign-out confirmation.
type LogoutRequest struct {
	Confirm bool `json:"confirm"`
}

// NavigateRequest names the view to move to.
type NavigateRequest struct {
	View string `json:"view"`
}

// ResetRequest carries the factory-reset confirmation.
type ResetRequest struct {
	Confirm bool `json:"confirm"`
}
