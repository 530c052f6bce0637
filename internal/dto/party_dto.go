package dto

type CreateCustomerRequest struct {
	Name    string  `json:"name"    validate:"required"`
	Address string  `json:"address" validate:"required"`
	Phone   *string `json:"phone"   validate:"omitempty,min=5"`
	Email   *string `json:"email"   validate:"omitempty,email"`
}

type CreateSupplierRequest struct {
	Name    string  `json:"name"    validate:"required"`
	Address string  `json:"address" validate:"required"`
	Phone   *string `json:"phone"   validate:"omitempty,min=5"`
}
