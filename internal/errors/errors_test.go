package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIErrorInterface(t *testing.T) {
	err := New(http.StatusBadRequest, "INVALID_REQUEST", "bad input")
	assert.Equal(t, "bad input", err.Error())
	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
}

func TestErrValidation(t *testing.T) {
	err := ErrValidation("dimension", "must be one of week, day, month, person, tag")
	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
	assert.Equal(t, "VALIDATION_FAILED", err.ErrorCode)

	detail, ok := err.Details.(ValidationError)
	require.True(t, ok)
	assert.Equal(t, "dimension", detail.Field)
}

func TestWorkbookErrors(t *testing.T) {
	nf := WorkbookNotFoundError("register.xlsx")
	assert.Equal(t, http.StatusNotFound, nf.StatusCode)
	assert.Contains(t, nf.Message, "register.xlsx")

	ur := WorkbookUnreadableError(fmt.Errorf("zip: not a valid zip file"))
	assert.Equal(t, http.StatusUnprocessableEntity, ur.StatusCode)
	assert.Equal(t, "WORKBOOK_UNREADABLE", ur.ErrorCode)
}

func TestHandleErrorRendersAPIError(t *testing.T) {
	h := NewErrorHandler(nil)
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)

	h.HandleError(w, r, WorkbookNotFoundError("missing.xlsx"))

	assert.Equal(t, http.StatusNotFound, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "WORKBOOK_NOT_FOUND", body["error_code"])
}

// Unknown errors never leak internals to the client.
func TestHandleErrorWrapsUnknown(t *testing.T) {
	h := NewErrorHandler(nil)
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)

	h.HandleError(w, r, fmt.Errorf("disk exploded at /var/secret"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "/var/secret")
}

func TestHandleErrorNil(t *testing.T) {
	h := NewErrorHandler(nil)
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	h.HandleError(w, r, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
}
