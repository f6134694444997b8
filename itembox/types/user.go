package types

type CreateUserRequest struct {
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Username string  `json:"username,omitempty"`
	FullName *string `json:"full_name,omitempty"`
}

type ErrorResponse struct {
	Detail string `json:"detail"`
}
