package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/schemas"
)

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`    // machine-readable error code
	Details any    `json:"details,omitempty"` // additional context (validation errors, etc.)
}

// MessageResponse is returned by operations that have no record to show.
type MessageResponse struct {
	Message string `json:"message"`
}

const (
	codeValidation  = "validation_error"
	codeInvalidBody = "invalid_body"
)

// --- Error Response Helpers ---

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// respondNotFound sends a 404 Not Found response.
func respondNotFound(c *gin.Context, resource string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: resource + " not found"})
}

// respondInternalError logs the error and sends a 500 Internal Server Error response.
// The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s) [request %s]: %v", context, GetRequestID(c), err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

// respondValidationError sends a 422 with one entry per rejected field.
func respondValidationError(c *gin.Context, verr *schemas.ValidationError) {
	c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
		Error:   "validation failed",
		Code:    codeValidation,
		Details: verr.Fields,
	})
}

// respondBindError maps an error from binding or validating a request body.
func respondBindError(c *gin.Context, err error) {
	err = schemas.FromValidator(err)

	var verr *schemas.ValidationError
	if errors.As(err, &verr) {
		respondValidationError(c, verr)
		return
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		respondValidationError(c, schemas.NewFieldError(jsonFieldName(typeErr.Field), "must be "+jsonKind(typeErr.Type.Kind().String())))
		return
	}

	c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
		Error:   "invalid request body",
		Code:    codeInvalidBody,
		Details: err.Error(),
	})
}

// jsonFieldName strips the Go path encoding/json reports for promoted fields
// (e.g. "BookFields.year"). Book payloads are flat, so the last segment is the key.
func jsonFieldName(path string) string {
	if i := strings.LastIndex(path, "."); i >= 0 {
		return path[i+1:]
	}
	return path
}

// jsonKind names a Go kind the way API clients think of JSON values.
func jsonKind(goKind string) string {
	switch goKind {
	case "int", "int8", "int16", "int32", "int64", "uint", "uint8", "uint16", "uint32", "uint64":
		return "an integer"
	case "struct", "map":
		return "an object"
	case "slice", "array":
		return "a list"
	case "bool":
		return "a boolean"
	case "string":
		return "a string"
	default:
		return "a valid " + goKind
	}
}

// --- Parameter Parsing ---

// parseIDParam extracts and validates an unsigned integer ID from URL parameters.
// Returns the parsed ID or responds with a 400 error and returns 0, false.
func parseIDParam(c *gin.Context, paramName string) (uint, bool) {
	idStr := c.Param(paramName)
	id, err := strconv.ParseUint(idStr, 10, strconv.IntSize)
	if err != nil {
		respondBadRequest(c, "invalid "+paramName)
		return 0, false
	}
	return uint(id), true
}
