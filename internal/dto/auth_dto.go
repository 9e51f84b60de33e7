package dto

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Message     string `json:"message"`
	Role        string `json:"role"`
	AccessToken string `json:"access_token,omitempty"`
}

type MeResponse struct {
	Message string `json:"message"`
	Role    string `json:"role"`
}
