package resources

import (
	"context"

	"github.com/PKwhiting/shopify-go/pkg/graphql"
	"github.com/PKwhiting/shopify-go/pkg/pagination"
)

// Products accesses the products connection.
type Products struct {
	exec Executor
}

// NewProducts wraps an Executor (normally *core.Client).
func NewProducts(exec Executor) *Products {
	return &Products{exec: exec}
}

// List fetches one page. first <= 0 uses the configured page size;
// after "" starts from the beginning.
func (p *Products) List(ctx context.Context, first int, after string) (*graphql.Response, error) {
	return listPage(ctx, p.exec, productListQuery, first, after)
}

// Get fetches one product by ID. Returns nil when the ID is unknown.
func (p *Products) Get(ctx context.Context, id string) (map[string]interface{}, error) {
	return getNode(ctx, p.exec, productGetQuery, "product", id)
}

// Each walks every product, one page at a time.
func (p *Products) Each(ctx context.Context, fn func(node map[string]interface{}) error) error {
	return pagination.Walk(ctx, fetcher(p.exec, productListQuery), "products", fn)
}

// All collects every product. Prefer Each on large catalogs.
func (p *Products) All(ctx context.Context) ([]map[string]interface{}, error) {
	return pagination.NewIterator(fetcher(p.exec, productListQuery), "products").All(ctx)
}

// Create makes a new product from a ProductInput mapping.
func (p *Products) Create(ctx context.Context, input map[string]interface{}) (map[string]interface{}, error) {
	resp, err := p.exec.Execute(ctx, productCreateMutation, map[string]interface{}{"input": input})
	if err != nil {
		return nil, err
	}
	payload, err := mutationPayload(resp, "productCreate")
	if err != nil {
		return nil, err
	}
	product, _ := payload["product"].(map[string]interface{})
	return product, nil
}

// Update applies a ProductInput mapping; input must carry the ID.
func (p *Products) Update(ctx context.Context, id string, input map[string]interface{}) (map[string]interface{}, error) {
	merged := make(map[string]interface{}, len(input)+1)
	for k, v := range input {
		merged[k] = v
	}
	merged["id"] = id
	resp, err := p.exec.Execute(ctx, productUpdateMutation, map[string]interface{}{"input": merged})
	if err != nil {
		return nil, err
	}
	payload, err := mutationPayload(resp, "productUpdate")
	if err != nil {
		return nil, err
	}
	product, _ := payload["product"].(map[string]interface{})
	return product, nil
}

// Delete removes a product and returns the deleted ID.
func (p *Products) Delete(ctx context.Context, id string) (string, error) {
	resp, err := p.exec.Execute(ctx, productDeleteMutation, map[string]interface{}{
		"input": map[string]interface{}{"id": id},
	})
	if err != nil {
		return "", err
	}
	payload, err := mutationPayload(resp, "productDelete")
	if err != nil {
		return "", err
	}
	deletedID, _ := payload["deletedProductId"].(string)
	return deletedID, nil
}
