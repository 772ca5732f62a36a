package docs_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"

	"github.com/jhoicas/medisupply-api/docs"
)

func TestSwaggerRegistrado(t *testing.T) {
	raw, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var spec struct {
		Swagger string                    `json:"swagger"`
		Info    struct{ Title string }    `json:"info"`
		Paths   map[string]map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &spec))
	assert.Equal(t, "2.0", spec.Swagger)
	assert.Equal(t, "MediSupply API", spec.Info.Title)

	for path, method := range map[string]string{
		"/api/v1/auth/login":            "post",
		"/api/v1/orders/{id}/status":    "patch",
		"/api/v1/visits/{id}/report":    "patch",
		"/api/v1/reports/sales-summary": "get",
		"/api/v1/products/recommended":  "get",
		"/api/v1/distribution-centers":  "post",
		"/health":                       "get",
	} {
		ops, ok := spec.Paths[path]
		require.True(t, ok, path)
		assert.Contains(t, ops, method, path)
	}
}
