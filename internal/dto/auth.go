package dto

type SignupRequest struct {
	Fullname string `json:"fullname"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by signup, signin and google-auth.
type AuthResponse struct {
	AccessToken string `json:"access_token"`
	ProfileImg  string `json:"profile_img"`
	Username    string `json:"username"`
	Fullname    string `json:"fullname"`
}

type GoogleAuthRequest struct {
	AccessToken string `json:"access_token"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type SearchUsersRequest struct {
	Query string `json:"query"`
}

type GetProfileRequest struct {
	Username string `json:"username"`
}
