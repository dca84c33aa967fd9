package user

type RegisterRequest struct {
	FullName   string `json:"full_name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Phone      string `json:"phone"`
	Password   string `json:"password" binding:"required,min=6"`
	Role       string `json:"role" binding:"omitempty,oneof=Employee Manager Admin"`
	Department string `json:"department" binding:"required"`
}

type UpdateProfileRequest struct {
	FullName *string `json:"full_name"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Phone    *string `json:"phone"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

type AssignManagerRequest struct {
	UserID    uint `json:"userId" binding:"required"`
	ManagerID uint `json:"managerId" binding:"required"`
}

type PromoteToManagerRequest struct {
	UserID uint `json:"userId" binding:"required"`
}

type UserResponse struct {
	UserID      uint    `json:"userId"`
	FullName    string  `json:"fullName"`
	Email       string  `json:"email"`
	Phone       string  `json:"phone,omitempty"`
	Role        string  `json:"role"`
	Department  string  `json:"department"`
	ManagerID   *uint   `json:"managerId,omitempty"`
	ManagerName *string `json:"managerName,omitempty"`
	DateJoined  string  `json:"dateJoined"`
}
