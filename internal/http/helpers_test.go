package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookshelf/internal/schemas"
)

func TestParseIDParam_Valid(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "123"}}

	id, ok := parseIDParam(c, "id")

	assert.True(t, ok)
	assert.Equal(t, uint(123), id)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestParseIDParam_Invalid(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}

	id, ok := parseIDParam(c, "id")

	assert.False(t, ok)
	assert.Equal(t, uint(0), id)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid id")
}

func TestParseIDParam_Negative(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "-1"}}

	id, ok := parseIDParam(c, "id")

	assert.False(t, ok)
	assert.Equal(t, uint(0), id)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestParseIDParam_BeyondUint32(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "4294967296"}}

	id, ok := parseIDParam(c, "id")

	assert.True(t, ok)
	assert.Equal(t, uint(4294967296), id)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestJSONFieldName(t *testing.T) {
	assert.Equal(t, "year", jsonFieldName("BookFields.year"))
	assert.Equal(t, "year", jsonFieldName("year"))
	assert.Equal(t, "", jsonFieldName(""))
}

func TestRespondInternalError_HidesCause(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	respondInternalError(c, errors.New("database is locked"), "test")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())
}

func TestRespondBindError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantCode  string
		wantField string
	}{
		{
			name:     "validation error",
			err:      schemas.NewFieldError("title", "must not be empty"),
			wantCode: codeValidation,
		},
		{
			name: "type mismatch",
			err: json.Unmarshal([]byte(`{"year":"x"}`), &struct {
				Year int `json:"year"`
			}{}),
			wantCode: codeValidation,
		},
		{
			name: "type mismatch in embedded struct",
			err: json.Unmarshal([]byte(`{"year":1965.5}`), &struct {
				schemas.BookFields
			}{}),
			wantCode:  codeValidation,
			wantField: "year",
		},
		{
			name:     "syntax error",
			err:      json.Unmarshal([]byte(`{`), &struct{}{}),
			wantCode: codeInvalidBody,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Error(t, tt.err)

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			respondBindError(c, tt.err)

			assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
			var resp map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantCode, resp["code"])
			if tt.wantField != "" {
				details, _ := resp["details"].([]any)
				require.Len(t, details, 1)
				assert.Equal(t, tt.wantField, details[0].(map[string]any)["field"])
			}
		})
	}
}

func TestNormalizeBasePath(t *testing.T) {
	tests := map[string]string{
		"":         "/books",
		"/books":   "/books",
		"/books/":  "/books",
		"books":    "/books",
		"/api/v1/": "/api/v1",
		"/":        "/",
	}
	for in, want := range tests {
		assert.Equal(t, want, normalizeBasePath(in), "input %q", in)
	}
}
