package handlers_test

import (
	"encoding/json"
	"regexp"
	"strings"
	"testing"

	portssvc "github.com/SscSPs/cari_ledger/internal/core/ports/services"
	"github.com/SscSPs/cari_ledger/internal/handlers"
	"github.com/SscSPs/cari_ledger/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

var ginParam = regexp.MustCompile(`:([A-Za-z]+)`)

// TestSwaggerDocMatchesRoutes fails when cmd/docs is stale: every /api/v1 route must be
// documented and every documented operation must be routed. Run `make docs` to regenerate.
func TestSwaggerDocMatchesRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers.RegisterRoutes(r, &config.Config{}, &portssvc.ServiceContainer{
		Group:   new(MockGroupService),
		Account: new(MockAccountService),
		Ledger:  new(MockLedgerService),
		Setting: new(MockSettingService),
	}, nil)

	raw, err := swag.ReadDoc()
	require.NoError(t, err)
	var doc struct {
		BasePath string                                `json:"basePath"`
		Paths    map[string]map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	require.Equal(t, "/api/v1", doc.BasePath)

	documented := map[string]bool{}
	for path, ops := range doc.Paths {
		for method := range ops {
			documented[strings.ToUpper(method)+" "+path] = true
		}
	}

	routed := map[string]bool{}
	for _, route := range r.Routes() {
		path := route.Path
		switch {
		case strings.HasPrefix(path, doc.BasePath):
			path = strings.TrimPrefix(path, doc.BasePath)
		case path == "/health":
		default:
			continue
		}
		key := route.Method + " " + ginParam.ReplaceAllString(path, "{$1}")
		routed[key] = true
		assert.True(t, documented[key], "route %s is missing from the swagger doc", key)
	}

	for key := range documented {
		assert.True(t, routed[key], "swagger doc describes %s but no route serves it", key)
	}
}
