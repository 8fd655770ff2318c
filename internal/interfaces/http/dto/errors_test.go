package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, GetHTTPStatus(ErrCodeNotFound))
	assert.Equal(t, http.StatusBadRequest, GetHTTPStatus(ErrCodeInvalidInput))
	assert.Equal(t, http.StatusConflict, GetHTTPStatus(ErrCodeConcurrencyConflict))
	assert.Equal(t, http.StatusUnprocessableEntity, GetHTTPStatus(ErrCodeInsufficientStock))
	assert.Equal(t, http.StatusUnprocessableEntity, GetHTTPStatus(ErrCodeLayerInUse))
	assert.Equal(t, http.StatusInternalServerError, GetHTTPStatus("ERR_DOES_NOT_EXIST"))
}

func TestNormalizeErrorCode(t *testing.T) {
	assert.Equal(t, ErrCodeNotFound, NormalizeErrorCode("NOT_FOUND"))
	assert.Equal(t, ErrCodeOverAllocation, NormalizeErrorCode("OVER_ALLOCATION"))
	assert.Equal(t, ErrCodeHasPayments, NormalizeErrorCode("HAS_PAYMENTS"))
	assert.Equal(t, ErrCodeHasReturns, NormalizeErrorCode("HAS_RETURNS"))
	assert.Equal(t, ErrCodeBusinessRule, NormalizeErrorCode("SOME_NEW_RULE"))
}

func TestNewSuccessResponseWithMeta(t *testing.T) {
	resp := NewSuccessResponseWithMeta([]int{1, 2, 3}, 7, 1, 3)
	assert.True(t, resp.Success)
	assert.Equal(t, int64(7), resp.Meta.Total)
	assert.Equal(t, 3, resp.Meta.TotalPages)
}
