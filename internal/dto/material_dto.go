package dto

type CreateMaterialRequest struct {
	Name      string `json:"name"      validate:"required"`
	Stock     int    `json:"stock"     validate:"min=0"`
	Threshold int    `json:"threshold" validate:"min=0"`
}

// UpdateMaterialRequest uses pointers so absent fields are left untouched.
// A stock change through this path is recorded as an "adjustment" movement.
type UpdateMaterialRequest struct {
	Name      *string `json:"name"      validate:"omitempty,min=1"`
	Stock     *int    `json:"stock"     validate:"omitempty,min=0"`
	Threshold *int    `json:"threshold" validate:"omitempty,min=0"`
}
