package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DareDevilStudios/sharon-billing/internal/dto"
	"github.com/DareDevilStudios/sharon-billing/internal/service"
)

type ManufacturingHandler struct{ svc service.ManufacturingService }

func NewManufacturingHandler(svc service.ManufacturingService) *ManufacturingHandler {
	return &ManufacturingHandler{svc: svc}
}

func (h *ManufacturingHandler) Record(c *gin.Context) {
	var req dto.RecordManufacturingRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Record(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ManufacturingHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ManufacturingHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ManufacturingHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
