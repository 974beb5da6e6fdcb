package models

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Role          string `json:"role"`
	AssignedEvent string `json:"assignedEvent,omitempty"`
	IsSuper       *bool  `json:"isSuper,omitempty"`
	Token         string `json:"token"`
}

type InitialAdminResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
	Email   string `json:"email"`
}
