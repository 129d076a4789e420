package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/fixware/console/internal/core/domain"
	"github.com/fixware/console/internal/core/ports"
)

// OrderGateway implements ports.OrderGateway against /orders.
type OrderGateway struct {
	client *Client
}

func NewOrderGateway(client *Client) *OrderGateway {
	return &OrderGateway{client: client}
}

func (g *OrderGateway) List(ctx context.Context, token string, q ports.ListQuery) (*ports.OrderPage, error) {
	return g.list(ctx, token, listPath("/orders", q))
}

// ListAll hits the admin-only full listing.
func (g *OrderGateway) ListAll(ctx context.Context, token string, q ports.ListQuery) (*ports.OrderPage, error) {
	q.UserID = 0
	return g.list(ctx, token, listPath("/orders/allorders", q))
}

func (g *OrderGateway) list(ctx context.Context, token, path string) (*ports.OrderPage, error) {
	var raw json.RawMessage
	if err := g.client.get(ctx, token, path, &raw); err != nil {
		return nil, err
	}
	env, err := decodeList[domain.Order](raw)
	if err != nil {
		return nil, err
	}
	return &ports.OrderPage{
		Content:       env.Content,
		TotalElements: env.TotalElements,
		TotalPages:    env.TotalPages,
	}, nil
}

func (g *OrderGateway) Get(ctx context.Context, token string, id int64) (*domain.Order, error) {
	var order domain.Order
	if err := g.client.get(ctx, token, fmt.Sprintf("/orders/%d", id), &order); err != nil {
		return nil, mapOrderErr(err)
	}
	return &order, nil
}

func (g *OrderGateway) Create(ctx context.Context, token string, w ports.OrderWrite) (*domain.Order, error) {
	var order domain.Order
	if err := g.client.post(ctx, token, "/orders", w, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (g *OrderGateway) Update(ctx context.Context, token string, id int64, w ports.OrderWrite) (*domain.Order, error) {
	var order domain.Order
	if err := g.client.put(ctx, token, fmt.Sprintf("/orders/%d", id), w, &order); err != nil {
		return nil, mapOrderErr(err)
	}
	return &order, nil
}

func (g *OrderGateway) Delete(ctx context.Context, token string, id int64) error {
	return mapOrderErr(g.client.delete(ctx, token, fmt.Sprintf("/orders/%d", id)))
}

func mapOrderErr(err error) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
		return domain.ErrOrderNotFound
	}
	return err
}
