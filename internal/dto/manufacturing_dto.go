package dto

type ConsumedMaterialRequest struct {
	MaterialID string `json:"materialId" validate:"required,uuid"`
	Quantity   int    `json:"quantity"   validate:"required,min=1"`
}

type ProducedProductRequest struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	Quantity  int    `json:"quantity"  validate:"required,min=1"`
}

type RecordManufacturingRequest struct {
	Date     string                    `json:"date"     validate:"required,datetime=2006-01-02"`
	Consumed []ConsumedMaterialRequest `json:"rawMaterialsConsumed" validate:"required,min=1,dive"`
	Produced []ProducedProductRequest  `json:"productsProduced"     validate:"required,min=1,dive"`
}
