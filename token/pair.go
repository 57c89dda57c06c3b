package token

// Pair is the credential material returned by a successful login.
type Pair struct {
	Token        string `json:"token"`        // Bearer token sent on every API request
	RefreshToken string `json:"refreshToken"` // Kept for the backend; the console never refreshes on its own
}
