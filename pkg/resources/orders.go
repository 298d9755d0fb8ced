package resources

import (
	"context"

	"github.com/PKwhiting/shopify-go/pkg/graphql"
	"github.com/PKwhiting/shopify-go/pkg/pagination"
)

// Orders accesses the orders connection.
type Orders struct {
	exec Executor
}

// NewOrders wraps an Executor.
func NewOrders(exec Executor) *Orders {
	return &Orders{exec: exec}
}

// List fetches one page of orders.
func (o *Orders) List(ctx context.Context, first int, after string) (*graphql.Response, error) {
	return listPage(ctx, o.exec, orderListQuery, first, after)
}

// Get fetches one order by ID.
func (o *Orders) Get(ctx context.Context, id string) (map[string]interface{}, error) {
	return getNode(ctx, o.exec, orderGetQuery, "order", id)
}

// Each walks every order.
func (o *Orders) Each(ctx context.Context, fn func(node map[string]interface{}) error) error {
	return pagination.Walk(ctx, fetcher(o.exec, orderListQuery), "orders", fn)
}
