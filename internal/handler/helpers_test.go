package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/DareDevilStudios/sharon-billing/internal/ledger"
)

func statusFor(t *testing.T, err error) int {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	respondError(c, err)
	return w.Code
}

func TestRespondErrorStatusMapping(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, statusFor(t, fmt.Errorf("%w: sale x", ledger.ErrNotFound)))

	// request-shape problems, including return bounds, are 422
	assert.Equal(t, http.StatusUnprocessableEntity, statusFor(t, ledger.ErrValidation))
	assert.Equal(t, http.StatusUnprocessableEntity, statusFor(t, ledger.ErrInvalidReturnQuantity))

	// state conflicts are 409
	assert.Equal(t, http.StatusConflict, statusFor(t, ledger.ErrInsufficientStock))
	assert.Equal(t, http.StatusConflict, statusFor(t, ledger.ErrInsufficientRawMaterial))
	assert.Equal(t, http.StatusConflict, statusFor(t, ledger.ErrRollbackInfeasible))
	assert.Equal(t, http.StatusConflict, statusFor(t, ledger.ErrSaleCancelled))

	assert.Equal(t, http.StatusInternalServerError, statusFor(t, errors.New("boom")))
}
