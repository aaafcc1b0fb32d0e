package models

// SignupRequest represents the JSON body for user signup
// swagger:model SignupRequest
type SignupRequest struct {
	// Username, unique and case-sensitive
	// required: true
	// example: alice
	Username string `json:"username" validate:"required"`

	// Email, unique and stored lowercased
	// required: true
	// example: alice@example.com
	Email string `json:"email" validate:"required,email"`

	// Password, at least 6 characters
	// required: true
	// example: secret1
	Password string `json:"password" validate:"required,max=72"`
}

// SignupResponse represents a successful signup
// swagger:model SignupResponse
type SignupResponse struct {
	// example: User created successfully.
	Message string `json:"message"`
	// example: 3fa85f64-5717-4562-b3fc-2c963f66afa6
	UserID string `json:"user_id"`
}

// LoginRequest represents the JSON body for user login. Email takes precedence over username.
// swagger:model LoginRequest
type LoginRequest struct {
	// example: alice@example.com
	Email string `json:"email" validate:"omitempty,email"`
	// example: alice
	Username string `json:"username"`
	// required: true
	// example: secret1
	Password string `json:"password" validate:"required"`
}

// LoginResponse represents a successful login
// swagger:model LoginResponse
type LoginResponse struct {
	// example: Login successful.
	Message string `json:"message"`
	// example: eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9...
	JWTToken string `json:"jwt_token"`
}
