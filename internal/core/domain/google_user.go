package domain

// GoogleUserInfo holds the subset of Google profile claims the app cares about.
type GoogleUserInfo struct {
	Sub           string `json:"sub"` // Google's stable user ID
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}
