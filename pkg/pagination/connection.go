// Package pagination walks Shopify's cursor-based connections: it
// extracts edges[].node lists and pageInfo from GraphQL responses and
// can drive repeated fetches to stream every node of a connection.
package pagination

import (
	"fmt"

	"github.com/PKwhiting/shopify-go/pkg/errors"
	"github.com/PKwhiting/shopify-go/pkg/graphql"
)

// Cursor describes the paging position after one page.
// HasNextPage=false always pairs with an empty EndCursor.
type Cursor struct {
	HasNextPage bool
	EndCursor   string
}

// connection locates the connection object under data.<key>.
//
// A response whose data lacks the key but carries GraphQL errors
// surfaces those errors instead of a shape complaint; a shape mismatch
// with no errors is malformed. A legitimately empty result set still
// has the connection structure, so empty is never conflated with
// missing.
func connection(resp *graphql.Response, key string) (map[string]interface{}, *errors.APIError) {
	if resp == nil || resp.Data == nil {
		if failure := upstreamErrors(resp); failure != nil {
			return nil, failure
		}
		return nil, malformed(key, "response has no data")
	}
	raw, ok := traverse(resp.Data, key)
	if !ok {
		if failure := upstreamErrors(resp); failure != nil {
			return nil, failure
		}
		return nil, malformed(key, "connection not found in data")
	}
	conn, ok := raw.(map[string]interface{})
	if !ok {
		return nil, malformed(key, fmt.Sprintf("connection is %T, want object", raw))
	}
	return conn, nil
}

func upstreamErrors(resp *graphql.Response) *errors.APIError {
	if resp == nil || !resp.HasErrors() {
		return nil
	}
	return graphql.Classify(200, nil, resp, nil)
}

func malformed(key, detail string) *errors.APIError {
	return &errors.APIError{
		Kind:      errors.KindMalformed,
		Retryable: false,
		Message:   fmt.Sprintf("connection %q: %s", key, detail),
	}
}

// Nodes extracts the edges[].node objects of the connection, in server
// order. An empty edges list is a valid empty page.
func Nodes(resp *graphql.Response, key string) ([]map[string]interface{}, error) {
	conn, failure := connection(resp, key)
	if failure != nil {
		return nil, failure
	}
	rawEdges, ok := conn["edges"]
	if !ok {
		return nil, malformed(key, "edges missing")
	}
	edges, ok := rawEdges.([]interface{})
	if !ok {
		return nil, malformed(key, fmt.Sprintf("edges is %T, want array", rawEdges))
	}

	nodes := make([]map[string]interface{}, 0, len(edges))
	for i, rawEdge := range edges {
		edge, ok := rawEdge.(map[string]interface{})
		if !ok {
			return nil, malformed(key, fmt.Sprintf("edge %d is %T, want object", i, rawEdge))
		}
		node, ok := edge["node"].(map[string]interface{})
		if !ok {
			return nil, malformed(key, fmt.Sprintf("edge %d has no node object", i))
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

// Page reads the connection's pageInfo. The returned Cursor carries an
// EndCursor only while more pages remain.
func Page(resp *graphql.Response, key string) (Cursor, error) {
	conn, failure := connection(resp, key)
	if failure != nil {
		return Cursor{}, failure
	}
	rawInfo, ok := conn["pageInfo"]
	if !ok {
		return Cursor{}, malformed(key, "pageInfo missing")
	}
	info, ok := rawInfo.(map[string]interface{})
	if !ok {
		return Cursor{}, malformed(key, fmt.Sprintf("pageInfo is %T, want object", rawInfo))
	}
	hasNext, ok := info["hasNextPage"].(bool)
	if !ok {
		return Cursor{}, malformed(key, "pageInfo.hasNextPage missing or not a bool")
	}
	if !hasNext {
		// No dangling cursor after the terminal page.
		return Cursor{HasNextPage: false}, nil
	}
	endCursor, _ := info["endCursor"].(string)
	return Cursor{HasNextPage: true, EndCursor: endCursor}, nil
}

// HasNextPage reports whether the connection has another page.
func HasNextPage(resp *graphql.Response, key string) (bool, error) {
	cursor, err := Page(resp, key)
	if err != nil {
		return false, err
	}
	return cursor.HasNextPage, nil
}

// EndCursor returns the cursor for the next page, or "" on the
// terminal page.
func EndCursor(resp *graphql.Response, key string) (string, error) {
	cursor, err := Page(resp, key)
	if err != nil {
		return "", err
	}
	return cursor.EndCursor, nil
}
