package docs_test

import (
	"encoding/json"
	"regexp"
	"testing"

	"github.com/SscSPs/ledger_core/cmd/docs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

type swaggerDoc struct {
	Info struct {
		Title string `json:"title"`
	} `json:"info"`
	BasePath    string                                `json:"basePath"`
	Paths       map[string]map[string]json.RawMessage `json:"paths"`
	Definitions map[string]json.RawMessage            `json:"definitions"`
}

func readDoc(t *testing.T) (string, swaggerDoc) {
	t.Helper()
	raw, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
	require.NoError(t, err)
	var doc swaggerDoc
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	return raw, doc
}

func TestDocumentListsRoutes(t *testing.T) {
	_, doc := readDoc(t)

	assert.Equal(t, "Ledger Core API", doc.Info.Title)
	assert.Equal(t, "/api/v1", doc.BasePath)
	require.NotEmpty(t, doc.Paths)

	for path, method := range map[string]string{
		"/accounts":                          "post",
		"/journal-entries/{id}/post":         "post",
		"/invoices/{id}/pay":                 "post",
		"/reports/trial-balance":             "get",
		"/currencies":                        "post",
		"/currencies/{code}/exchange-rate":   "put",
		"/bank-accounts/{id}/statements":     "post",
		"/bank-statements/{id}/reconcile":    "post",
		"/bank-accounts/{id}/reconciliation": "get",
	} {
		ops, ok := doc.Paths[path]
		if assert.Truef(t, ok, "missing path %s", path) {
			assert.Containsf(t, ops, method, "missing %s %s", method, path)
		}
	}
}

func TestDocumentReferencesResolve(t *testing.T) {
	raw, doc := readDoc(t)

	refs := regexp.MustCompile(`"#/definitions/([^"]+)"`).FindAllStringSubmatch(raw, -1)
	require.NotEmpty(t, refs)
	for _, ref := range refs {
		assert.Containsf(t, doc.Definitions, ref[1], "unresolved reference %s", ref[1])
	}
}
