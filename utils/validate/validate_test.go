package validate

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"squadhealth/internal/dto"
	cErr "squadhealth/internal/pkg/error"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonContext(body string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c
}

func TestBindAndValidateUsesCustomMessages(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "missing team",
			body: `{"responses":[{"dimensionId":"d1","score":3,"trend":"stable"}]}`,
			want: "teamId is required",
		},
		{
			name: "score out of range",
			body: `{"teamId":"alpha","responses":[{"dimensionId":"d1","score":5,"trend":"stable"}]}`,
			want: "score must be 1 (red), 2 (yellow) or 3 (green)",
		},
		{
			name: "bad date",
			body: `{"teamId":"alpha","date":"02/09/2024","responses":[{"dimensionId":"d1","score":3,"trend":"stable"}]}`,
			want: "date must be formatted as YYYY-MM-DD",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req dto.SubmitSessionDto
			cause, respErr := BindAndValidate(jsonContext(tt.body), &req)
			require.Error(t, cause)

			appErr, ok := respErr.(*cErr.Error)
			require.True(t, ok)
			assert.Equal(t, http.StatusBadRequest, appErr.HttpCode())
			assert.Equal(t, tt.want, appErr.ErrorDesc())
		})
	}
}

func TestBindAndValidateDescribesPlainStructs(t *testing.T) {
	var req struct {
		Name string `json:"name" binding:"required,max=3"`
	}
	_, respErr := BindAndValidate(jsonContext(`{"name":"toolong"}`), &req)

	appErr, ok := respErr.(*cErr.Error)
	require.True(t, ok)
	assert.Contains(t, appErr.ErrorDesc(), `Field "name" failed the 'max' validation (3)`)
	assert.Contains(t, appErr.ErrorDesc(), "rules: required,max=3")
}

func TestBindAndValidateAcceptsValidBody(t *testing.T) {
	var req dto.SubmitSessionDto
	cause, respErr := BindAndValidate(jsonContext(`{"teamId":"alpha","responses":[{"dimensionId":"d1","score":2,"trend":"improving"}]}`), &req)
	require.NoError(t, cause)
	require.NoError(t, respErr)
	assert.Equal(t, "alpha", req.TeamID)
	assert.Len(t, req.Responses, 1)
}
