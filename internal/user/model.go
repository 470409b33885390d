package user

import "lsers_hub_backend/internal/domain"

// UpdateProfileRequest renames the current user and resets the device PIN.
type UpdateProfileRequest struct {
	Name string `json:"name" binding:"required,max=80"`
	Pin  string `json:"pin" binding:"required,len=4,numeric"`
}

// UserResponse is the user as returned by the API.
type UserResponse struct {
	ID         int64       `json:"id"`
	Name       string      `json:"name"`
	Email      string      `json:"email"`
	ProviderID *int64      `json:"providerId,omitempty"`
	Role       domain.Role `json:"role"`
	IsAdmin    bool        `json:"isAdmin"`
}

// ToUserResponse converts a domain.User for output.
func ToUserResponse(u *domain.User) UserResponse {
	if u == nil {
		return UserResponse{}
	}
	role := u.Role
	if role == "" {
		role = domain.RoleUser
	}
	return UserResponse{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		ProviderID: u.ProviderID,
		Role:       role,
		IsAdmin:    role == domain.RoleAdmin,
	}
}
