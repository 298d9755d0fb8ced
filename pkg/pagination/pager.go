package pagination

import (
	"context"

	"github.com/PKwhiting/shopify-go/pkg/errors"
	"github.com/PKwhiting/shopify-go/pkg/graphql"
)

// FetchFunc fetches one page. cursor is "" for the first page and the
// previous page's endCursor afterwards.
type FetchFunc func(ctx context.Context, cursor string) (*graphql.Response, error)

// Iterator lazily walks a connection page by page, yielding nodes in
// server order. It is single-pass and not safe for concurrent use;
// build a fresh one per walk.
type Iterator struct {
	fetch FetchFunc
	key   string

	cursor    string
	exhausted bool
	buf       []map[string]interface{}
	// pendingErr defers a continuation failure until the nodes fetched
	// with it have been yielded.
	pendingErr error
}

// NewIterator creates an Iterator over the connection named by key.
// No request is issued until the first Next call.
func NewIterator(fetch FetchFunc, key string) *Iterator {
	return &Iterator{fetch: fetch, key: key}
}

// Next returns the next node. ok is false once the connection is
// exhausted. A page with zero nodes but hasNextPage=true is not
// termination; Next keeps fetching until it finds a node or the
// terminal page.
func (it *Iterator) Next(ctx context.Context) (map[string]interface{}, bool, error) {
	for {
		if len(it.buf) > 0 {
			node := it.buf[0]
			it.buf = it.buf[1:]
			return node, true, nil
		}
		if it.pendingErr != nil {
			err := it.pendingErr
			it.pendingErr = nil
			return nil, false, err
		}
		if it.exhausted {
			return nil, false, nil
		}
		if err := it.fetchPage(ctx); err != nil {
			it.exhausted = true
			return nil, false, err
		}
	}
}

func (it *Iterator) fetchPage(ctx context.Context) error {
	resp, err := it.fetch(ctx, it.cursor)
	if err != nil {
		return err
	}

	nodes, err := Nodes(resp, it.key)
	if err != nil {
		return err
	}
	cursor, err := Page(resp, it.key)
	if err != nil {
		return err
	}

	it.buf = nodes
	if !cursor.HasNextPage {
		it.exhausted = true
		it.cursor = ""
		return nil
	}
	if cursor.EndCursor == "" {
		// hasNextPage with no cursor means the server handed us a page
		// we cannot continue from. Yield this page's nodes, then fail.
		it.exhausted = true
		it.pendingErr = errors.WrapError(
			errors.ErrExtraction, errors.ErrPagination,
			"hasNextPage is true but endCursor is empty",
		)
		return nil
	}
	it.cursor = cursor.EndCursor
	return nil
}

// All drains the iterator and returns every remaining node.
func (it *Iterator) All(ctx context.Context) ([]map[string]interface{}, error) {
	var all []map[string]interface{}
	for {
		node, ok, err := it.Next(ctx)
		if err != nil {
			return all, err
		}
		if !ok {
			return all, nil
		}
		all = append(all, node)
	}
}

// Walk runs fn for every node of the connection. Each call starts a
// fresh pass from the first page; no iteration state is shared between
// calls. fn returning an error stops the walk.
func Walk(ctx context.Context, fetch FetchFunc, key string, fn func(node map[string]interface{}) error) error {
	it := NewIterator(fetch, key)
	for {
		node, ok, err := it.Next(ctx)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := fn(node); err != nil {
			return err
		}
	}
}
