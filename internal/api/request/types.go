package request

// RegisterRequest is the request body for registering an account
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ForgotPasswordRequest is the request body for the recovery existence check
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest is the request body for resetting a password
type ResetPasswordRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileRequest is the request body for a partial profile update
type UpdateProfileRequest struct {
	Name         *string `json:"name,omitempty"`
	ProfileImage *string `json:"profile_image,omitempty"`
}

// AddTaskRequest is the request body for creating a task
type AddTaskRequest struct {
	Text string `json:"text"`
}

// EditTaskRequest is the request body for editing a task's text
type EditTaskRequest struct {
	Text string `json:"text"`
}
