package handler

type updateProfileRequest struct {
	Nickname string  `json:"nickname" validate:"required,max=64"`
	Avatar   *string `json:"avatar,omitempty"`
	Timezone *string `json:"timezone,omitempty"`
	Language *string `json:"language,omitempty"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=6"`
}

type messageResponse struct {
	Message string `json:"message"`
}
