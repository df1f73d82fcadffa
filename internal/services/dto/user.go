package dto

type PromoteUserRequest struct {
	UserID uint `json:"userId" validate:"required"`
}
