package pagination

import (
	"context"
	"fmt"
	"testing"

	"github.com/PKwhiting/shopify-go/pkg/errors"
	"github.com/PKwhiting/shopify-go/pkg/graphql"
)

// pageFixture builds a products page response in the server's shape.
func pageFixture(ids []string, hasNext bool, endCursor string) *graphql.Response {
	edges := make([]interface{}, 0, len(ids))
	for _, id := range ids {
		edges = append(edges, map[string]interface{}{
			"node": map[string]interface{}{"id": id},
		})
	}
	pageInfo := map[string]interface{}{"hasNextPage": hasNext}
	if endCursor != "" {
		pageInfo["endCursor"] = endCursor
	}
	return &graphql.Response{
		Data: map[string]interface{}{
			"products": map[string]interface{}{
				"edges":    edges,
				"pageInfo": pageInfo,
			},
		},
	}
}

// scriptedFetch serves a fixed page sequence keyed by cursor and counts
// fetches.
func scriptedFetch(t *testing.T, pages map[string]*graphql.Response, fetches *int) FetchFunc {
	return func(ctx context.Context, cursor string) (*graphql.Response, error) {
		*fetches++
		page, ok := pages[cursor]
		if !ok {
			t.Fatalf("unexpected cursor %q", cursor)
		}
		return page, nil
	}
}

func TestIterator_ThreePageWalk(t *testing.T) {
	// Sizes 2, 2, 1: must yield exactly 5 nodes in order, 3 fetches.
	pages := map[string]*graphql.Response{
		"":   pageFixture([]string{"1", "2"}, true, "c1"),
		"c1": pageFixture([]string{"3", "4"}, true, "c2"),
		"c2": pageFixture([]string{"5"}, false, ""),
	}
	fetches := 0

	it := NewIterator(scriptedFetch(t, pages, &fetches), "products")
	var got []string
	for {
		node, ok, err := it.Next(context.Background())
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if !ok {
			break
		}
		got = append(got, node["id"].(string))
	}

	want := []string{"1", "2", "3", "4", "5"}
	if len(got) != len(want) {
		t.Fatalf("want %d nodes, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("node %d: want %s, got %s", i, want[i], got[i])
		}
	}
	if fetches != 3 {
		t.Fatalf("want exactly 3 fetches, got %d", fetches)
	}

	// A further Next must not fetch again.
	if _, ok, _ := it.Next(context.Background()); ok {
		t.Fatal("iterator yielded past exhaustion")
	}
	if fetches != 3 {
		t.Fatalf("exhausted iterator fetched again (%d)", fetches)
	}
}

func TestIterator_EmptyPageDoesNotTerminate(t *testing.T) {
	pages := map[string]*graphql.Response{
		"":   pageFixture(nil, true, "c1"), // zero nodes, more to come
		"c1": pageFixture([]string{"1"}, false, ""),
	}
	fetches := 0

	nodes, err := NewIterator(scriptedFetch(t, pages, &fetches), "products").All(context.Background())
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(nodes) != 1 || nodes[0]["id"] != "1" {
		t.Fatalf("want the node behind the empty page, got %v", nodes)
	}
	if fetches != 2 {
		t.Fatalf("want 2 fetches, got %d", fetches)
	}
}

func TestWalk_RestartsFresh(t *testing.T) {
	pages := map[string]*graphql.Response{
		"":   pageFixture([]string{"1"}, true, "c1"),
		"c1": pageFixture([]string{"2"}, false, ""),
	}
	fetches := 0
	fetch := scriptedFetch(t, pages, &fetches)

	for pass := 0; pass < 2; pass++ {
		count := 0
		err := Walk(context.Background(), fetch, "products", func(node map[string]interface{}) error {
			count++
			return nil
		})
		if err != nil {
			t.Fatalf("pass %d: %v", pass, err)
		}
		if count != 2 {
			t.Fatalf("pass %d: want 2 nodes, got %d", pass, count)
		}
	}
	// Two independent full passes, no shared state.
	if fetches != 4 {
		t.Fatalf("want 4 fetches across two passes, got %d", fetches)
	}
}

func TestWalk_CallbackErrorStops(t *testing.T) {
	pages := map[string]*graphql.Response{
		"": pageFixture([]string{"1", "2"}, false, ""),
	}
	fetches := 0
	sentinel := fmt.Errorf("stop here")

	count := 0
	err := Walk(context.Background(), scriptedFetch(t, pages, &fetches), "products", func(node map[string]interface{}) error {
		count++
		return sentinel
	})
	if err != sentinel {
		t.Fatalf("want sentinel error, got %v", err)
	}
	if count != 1 {
		t.Fatalf("walk continued after error: %d", count)
	}
}

func TestIterator_TruncatedCursorIsAnError(t *testing.T) {
	// hasNextPage with no endCursor: the walk cannot continue.
	pages := map[string]*graphql.Response{
		"": pageFixture([]string{"1"}, true, ""),
	}
	fetches := 0

	it := NewIterator(scriptedFetch(t, pages, &fetches), "products")
	// The buffered node from page 1 still comes out.
	node, ok, err := it.Next(context.Background())
	if err != nil || !ok || node["id"] != "1" {
		t.Fatalf("first node: %v %v %v", node, ok, err)
	}
	_, ok, err = it.Next(context.Background())
	if ok {
		t.Fatal("iterator continued past truncated page")
	}
	if !errors.Is(err, errors.ErrPagination) {
		t.Fatalf("want pagination error, got %v", err)
	}
}

func TestIterator_GraphQLErrorSurfaces(t *testing.T) {
	resp := &graphql.Response{
		Errors: []graphql.ResponseError{{Message: "boom"}},
	}
	it := NewIterator(func(ctx context.Context, cursor string) (*graphql.Response, error) {
		return resp, nil
	}, "products")

	_, ok, err := it.Next(context.Background())
	if ok {
		t.Fatal("expected no node")
	}
	apiErr, isAPI := errors.AsAPIError(err)
	if !isAPI || apiErr.Kind != errors.KindGraphQL {
		t.Fatalf("want graphql kind, got %v", err)
	}
}
