package dto

type RegisterDTO struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
}

type LoginDTO struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UpdateUserDTO struct {
	Email       *string `json:"email" binding:"omitempty,email"`
	Phone       *string `json:"phone"`
	OldPassword *string `json:"old_password"`
	Password    *string `json:"password" binding:"omitempty,min=6"`
}
