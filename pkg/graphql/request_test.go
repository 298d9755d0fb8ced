package graphql

import (
	"context"
	"encoding/json"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PKwhiting/shopify-go/pkg/auth"
)

func TestBuilder_Build(t *testing.T) {
	builder := NewBuilder(
		"https://myshop.myshopify.com/admin/api/2025-07/graphql.json",
		map[string]string{"X-Request-Source": "test"},
		auth.NewAccessTokenAuth("shpat_token"),
	)

	req := builder.NewRequest("query { shop { name } }", map[string]interface{}{"first": 5})
	httpReq, err := builder.Build(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "POST", httpReq.Method)
	assert.Equal(t, "application/json", httpReq.Header.Get("Content-Type"))
	assert.Equal(t, "shpat_token", httpReq.Header.Get("X-Shopify-Access-Token"))
	assert.Equal(t, "test", httpReq.Header.Get("X-Request-Source"))

	body, err := io.ReadAll(httpReq.Body)
	require.NoError(t, err)
	var envelope map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &envelope))
	assert.Equal(t, "query { shop { name } }", envelope["query"])
	assert.Equal(t, map[string]interface{}{"first": float64(5)}, envelope["variables"])
}

func TestBuilder_NilVariablesEncodeAsEmptyObject(t *testing.T) {
	builder := NewBuilder("https://example.com/graphql", nil, nil)
	req := builder.NewRequest("{ shop { name } }", nil)
	httpReq, err := builder.Build(context.Background(), req)
	require.NoError(t, err)

	body, _ := io.ReadAll(httpReq.Body)
	assert.Contains(t, string(body), `"variables":{}`)
}

func TestRequest_SnapshotIsolation(t *testing.T) {
	vars := map[string]interface{}{"first": 5}
	builder := NewBuilder("https://example.com/graphql", map[string]string{"A": "1"}, nil)
	req := builder.NewRequest("q", vars)

	// Mutating the inputs after the snapshot must not leak into the request.
	vars["first"] = 99
	builder.Headers["A"] = "2"

	assert.Equal(t, 5, req.Variables["first"])
	assert.Equal(t, "1", req.Headers["A"])
}

func TestAccessTokenAuth_MissingToken(t *testing.T) {
	builder := NewBuilder("https://example.com/graphql", nil, auth.NewAccessTokenAuth(""))
	req := builder.NewRequest("q", nil)
	_, err := builder.Build(context.Background(), req)
	assert.ErrorIs(t, err, auth.ErrMissingCredentials)
}
