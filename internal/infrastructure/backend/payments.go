package backend

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fixware/console/internal/core/domain"
)

// PaymentGateway implements ports.PaymentGateway against /payments.
type PaymentGateway struct {
	client *Client
}

func NewPaymentGateway(client *Client) *PaymentGateway {
	return &PaymentGateway{client: client}
}

func (g *PaymentGateway) List(ctx context.Context, token string) ([]domain.Payment, error) {
	var raw json.RawMessage
	if err := g.client.get(ctx, token, "/payments", &raw); err != nil {
		return nil, err
	}
	env, err := decodeList[domain.Payment](raw)
	if err != nil {
		return nil, err
	}
	return env.Content, nil
}

func (g *PaymentGateway) Create(ctx context.Context, token string, p domain.Payment) (*domain.Payment, error) {
	var created domain.Payment
	if err := g.client.post(ctx, token, "/payments", p, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (g *PaymentGateway) Update(ctx context.Context, token string, id int64, p domain.Payment) (*domain.Payment, error) {
	var updated domain.Payment
	if err := g.client.put(ctx, token, fmt.Sprintf("/payments/%d", id), p, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (g *PaymentGateway) Delete(ctx context.Context, token string, id int64) error {
	return g.client.delete(ctx, token, fmt.Sprintf("/payments/%d", id))
}
