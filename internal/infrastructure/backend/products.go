package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/fixware/console/internal/core/domain"
	"github.com/fixware/console/internal/core/ports"
)

// ProductGateway implements ports.ProductGateway against /products.
type ProductGateway struct {
	client *Client
}

func NewProductGateway(client *Client) *ProductGateway {
	return &ProductGateway{client: client}
}

func (g *ProductGateway) List(ctx context.Context, token, name string) ([]domain.Product, error) {
	path := "/products"
	if name != "" {
		path += "?name=" + url.QueryEscape(name)
	}

	var raw json.RawMessage
	if err := g.client.get(ctx, token, path, &raw); err != nil {
		return nil, err
	}
	env, err := decodeList[domain.Product](raw)
	if err != nil {
		return nil, err
	}
	return env.Content, nil
}

func (g *ProductGateway) Get(ctx context.Context, token string, id int64) (*domain.Product, error) {
	var product domain.Product
	if err := g.client.get(ctx, token, fmt.Sprintf("/products/%d", id), &product); err != nil {
		return nil, mapProductErr(err)
	}
	return &product, nil
}

func (g *ProductGateway) Create(ctx context.Context, token string, w ports.ProductWrite) (*domain.Product, error) {
	var product domain.Product
	if err := g.client.post(ctx, token, "/products", w, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (g *ProductGateway) Update(ctx context.Context, token string, id int64, w ports.ProductWrite) (*domain.Product, error) {
	var product domain.Product
	if err := g.client.put(ctx, token, fmt.Sprintf("/products/%d", id), w, &product); err != nil {
		return nil, mapProductErr(err)
	}
	return &product, nil
}

func (g *ProductGateway) Delete(ctx context.Context, token string, id int64) error {
	return mapProductErr(g.client.delete(ctx, token, fmt.Sprintf("/products/%d", id)))
}

func mapProductErr(err error) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
		return domain.ErrProductNotFound
	}
	return err
}
