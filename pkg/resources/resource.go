// Package resources wraps the transport with convenience accessors for
// products, customers and orders. Everything here is sugar over
// core.Client plus the pagination walker; no independent logic.
package resources

import (
	"context"
	"fmt"

	"github.com/PKwhiting/shopify-go/pkg/config"
	"github.com/PKwhiting/shopify-go/pkg/errors"
	"github.com/PKwhiting/shopify-go/pkg/graphql"
	"github.com/PKwhiting/shopify-go/pkg/pagination"
)

// Executor is the slice of core.Client the resources need.
type Executor interface {
	Execute(ctx context.Context, query string, variables map[string]interface{}) (*graphql.Response, error)
	Config() *config.Config
}

// listPage runs one paginated list query.
func listPage(ctx context.Context, exec Executor, query string, first int, after string) (*graphql.Response, error) {
	if first <= 0 {
		first = exec.Config().PageSize
	}
	if first > config.MaxPageSize {
		return nil, errors.WrapError(
			fmt.Errorf("page size %d exceeds maximum %d", first, config.MaxPageSize),
			errors.ErrValidation, "list",
		)
	}
	variables := map[string]interface{}{"first": first}
	if after != "" {
		variables["after"] = after
	}
	return exec.Execute(ctx, query, variables)
}

// fetcher adapts a list query to the pagination walker.
func fetcher(exec Executor, query string) pagination.FetchFunc {
	return func(ctx context.Context, cursor string) (*graphql.Response, error) {
		return listPage(ctx, exec, query, 0, cursor)
	}
}

// getNode runs a single-object query and returns data.<key>, which is
// null when the ID doesn't exist.
func getNode(ctx context.Context, exec Executor, query, key, id string) (map[string]interface{}, error) {
	if id == "" {
		return nil, errors.WrapError(
			fmt.Errorf("%s ID must not be empty", key),
			errors.ErrValidation, "get",
		)
	}
	resp, err := exec.Execute(ctx, query, map[string]interface{}{"id": id})
	if err != nil {
		return nil, err
	}
	node, _ := resp.Data[key].(map[string]interface{})
	return node, nil
}

// mutationPayload unwraps data.<field>, surfacing userErrors as a
// client-kind failure.
func mutationPayload(resp *graphql.Response, field string) (map[string]interface{}, error) {
	payload, ok := resp.Data[field].(map[string]interface{})
	if !ok {
		return nil, &errors.APIError{
			Kind:    errors.KindMalformed,
			Message: fmt.Sprintf("mutation payload %q missing", field),
		}
	}
	if userErrors, ok := payload["userErrors"].([]interface{}); ok && len(userErrors) > 0 {
		return nil, &errors.APIError{
			Kind:    errors.KindClient,
			Message: fmt.Sprintf("%s: %s", field, formatUserErrors(userErrors)),
		}
	}
	return payload, nil
}

func formatUserErrors(userErrors []interface{}) string {
	msg := ""
	for i, raw := range userErrors {
		entry, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		if i > 0 {
			msg += "; "
		}
		if m, ok := entry["message"].(string); ok {
			msg += m
		}
	}
	if msg == "" {
		msg = "unknown user error"
	}
	return msg
}
