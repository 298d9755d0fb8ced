package pagination

import (
	"encoding/json"
	"testing"

	"github.com/PKwhiting/shopify-go/pkg/errors"
	"github.com/PKwhiting/shopify-go/pkg/graphql"
)

func mustResponse(t *testing.T, raw string) *graphql.Response {
	t.Helper()
	var resp graphql.Response
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		t.Fatalf("bad fixture: %v", err)
	}
	return &resp
}

const productsPage = `{
	"data": {
		"products": {
			"edges": [
				{"node": {"id": "gid://shopify/Product/1", "title": "One"}, "cursor": "c1"},
				{"node": {"id": "gid://shopify/Product/2", "title": "Two"}, "cursor": "c2"}
			],
			"pageInfo": {"hasNextPage": true, "endCursor": "c2"}
		}
	}
}`

func TestNodes(t *testing.T) {
	resp := mustResponse(t, productsPage)
	nodes, err := Nodes(resp, "products")
	if err != nil {
		t.Fatalf("Nodes: %v", err)
	}
	if len(nodes) != 2 {
		t.Fatalf("want 2 nodes, got %d", len(nodes))
	}
	if nodes[0]["title"] != "One" || nodes[1]["title"] != "Two" {
		t.Fatalf("nodes out of order: %v", nodes)
	}
}

func TestNodes_EmptyEdgesIsValid(t *testing.T) {
	resp := mustResponse(t, `{"data":{"products":{"edges":[],"pageInfo":{"hasNextPage":false}}}}`)
	nodes, err := Nodes(resp, "products")
	if err != nil {
		t.Fatalf("Nodes: %v", err)
	}
	if len(nodes) != 0 {
		t.Fatalf("want empty page, got %v", nodes)
	}
}

func TestNodes_ShapeMismatchIsMalformed(t *testing.T) {
	cases := map[string]string{
		"no data":           `{}`,
		"missing key":       `{"data":{"orders":{}}}`,
		"connection scalar": `{"data":{"products":42}}`,
		"edges missing":     `{"data":{"products":{"pageInfo":{"hasNextPage":false}}}}`,
		"edges not array":   `{"data":{"products":{"edges":{}}}}`,
		"edge not object":   `{"data":{"products":{"edges":[1]}}}`,
		"node missing":      `{"data":{"products":{"edges":[{"cursor":"c1"}]}}}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Nodes(mustResponse(t, raw), "products")
			apiErr, ok := errors.AsAPIError(err)
			if !ok || apiErr.Kind != errors.KindMalformed {
				t.Fatalf("want malformed kind, got %v", err)
			}
		})
	}
}

func TestNodes_GraphQLErrorsSurfaceInsteadOfShapeError(t *testing.T) {
	resp := mustResponse(t, `{"errors":[{"message":"Field 'products' doesn't exist"}]}`)
	_, err := Nodes(resp, "products")
	apiErr, ok := errors.AsAPIError(err)
	if !ok || apiErr.Kind != errors.KindGraphQL {
		t.Fatalf("want graphql kind, got %v", err)
	}
}

func TestPage(t *testing.T) {
	resp := mustResponse(t, productsPage)
	cursor, err := Page(resp, "products")
	if err != nil {
		t.Fatalf("Page: %v", err)
	}
	if !cursor.HasNextPage || cursor.EndCursor != "c2" {
		t.Fatalf("unexpected cursor: %+v", cursor)
	}
}

func TestPage_TerminalPageHasNoCursor(t *testing.T) {
	// Even if the server sends a trailing endCursor, the terminal page
	// must not leak one.
	resp := mustResponse(t, `{"data":{"products":{"edges":[],"pageInfo":{"hasNextPage":false,"endCursor":"stale"}}}}`)
	cursor, err := Page(resp, "products")
	if err != nil {
		t.Fatalf("Page: %v", err)
	}
	if cursor.HasNextPage || cursor.EndCursor != "" {
		t.Fatalf("dangling cursor after terminal page: %+v", cursor)
	}

	end, err := EndCursor(resp, "products")
	if err != nil || end != "" {
		t.Fatalf("EndCursor: %q, %v", end, err)
	}
}

func TestPage_MissingPageInfoIsMalformed(t *testing.T) {
	resp := mustResponse(t, `{"data":{"products":{"edges":[]}}}`)
	_, err := Page(resp, "products")
	apiErr, ok := errors.AsAPIError(err)
	if !ok || apiErr.Kind != errors.KindMalformed {
		t.Fatalf("want malformed kind, got %v", err)
	}
}

func TestNodes_NestedKey(t *testing.T) {
	resp := mustResponse(t, `{"data":{"shop":{"products":{"edges":[{"node":{"id":"1"}}],"pageInfo":{"hasNextPage":false}}}}}`)
	nodes, err := Nodes(resp, "shop.products")
	if err != nil {
		t.Fatalf("Nodes: %v", err)
	}
	if len(nodes) != 1 {
		t.Fatalf("want 1 node, got %d", len(nodes))
	}
}
