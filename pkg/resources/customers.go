package resources

import (
	"context"

	"github.com/PKwhiting/shopify-go/pkg/graphql"
	"github.com/PKwhiting/shopify-go/pkg/pagination"
)

// Customers accesses the customers connection.
type Customers struct {
	exec Executor
}

// NewCustomers wraps an Executor.
func NewCustomers(exec Executor) *Customers {
	return &Customers{exec: exec}
}

// List fetches one page of customers.
func (c *Customers) List(ctx context.Context, first int, after string) (*graphql.Response, error) {
	return listPage(ctx, c.exec, customerListQuery, first, after)
}

// Get fetches one customer by ID.
func (c *Customers) Get(ctx context.Context, id string) (map[string]interface{}, error) {
	return getNode(ctx, c.exec, customerGetQuery, "customer", id)
}

// Each walks every customer.
func (c *Customers) Each(ctx context.Context, fn func(node map[string]interface{}) error) error {
	return pagination.Walk(ctx, fetcher(c.exec, customerListQuery), "customers", fn)
}
