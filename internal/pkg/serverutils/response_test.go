package serverutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kommo-tools-be/internal/pkg/apperr"
)

type sampleParams struct {
	Text  string `json:"text" validate:"required"`
	Limit int    `json:"limit" validate:"omitempty,min=1"`
}

func TestValidateRequestNamesJSONField(t *testing.T) {
	err := ValidateRequest(&sampleParams{})

	var appErr *apperr.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Status)
	assert.Equal(t, "text é obrigatório", appErr.Message)
}

func TestValidateRequestInvalidValue(t *testing.T) {
	err := ValidateRequest(&sampleParams{Text: "ok", Limit: -1})

	var appErr *apperr.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "limit é inválido", appErr.Message)
}

func TestValidateRequestOK(t *testing.T) {
	assert.NoError(t, ValidateRequest(&sampleParams{Text: "ok", Limit: 3}))
}

func TestEnvelopes(t *testing.T) {
	success := SuccessResponse("feito", map[string]int{"n": 1})
	assert.Equal(t, true, success["success"])
	assert.Equal(t, "feito", success["message"])

	failure := ErrorResponse("deu ruim")
	assert.Equal(t, true, failure["error"])
	assert.Equal(t, "deu ruim", failure["message"])
}
