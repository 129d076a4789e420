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

// UserGateway implements ports.UserGateway against /users.
type UserGateway struct {
	client *Client
}

func NewUserGateway(client *Client) *UserGateway {
	return &UserGateway{client: client}
}

func (g *UserGateway) List(ctx context.Context, token string) ([]domain.User, error) {
	var raw json.RawMessage
	if err := g.client.get(ctx, token, "/users", &raw); err != nil {
		return nil, err
	}
	env, err := decodeList[domain.User](raw)
	if err != nil {
		return nil, err
	}
	return env.Content, nil
}

func (g *UserGateway) Get(ctx context.Context, token string, id int64) (*domain.User, error) {
	var user domain.User
	if err := g.client.get(ctx, token, fmt.Sprintf("/users/%d", id), &user); err != nil {
		return nil, mapUserErr(err)
	}
	return &user, nil
}

func (g *UserGateway) Create(ctx context.Context, token string, w ports.UserWrite) (*domain.User, error) {
	var user domain.User
	if err := g.client.post(ctx, token, "/users", w, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (g *UserGateway) Update(ctx context.Context, token string, id int64, w ports.UserWrite) (*domain.User, error) {
	// The update payload never carries a password.
	w.Password = ""
	var user domain.User
	if err := g.client.put(ctx, token, fmt.Sprintf("/users/%d", id), w, &user); err != nil {
		return nil, mapUserErr(err)
	}
	return &user, nil
}

func (g *UserGateway) Delete(ctx context.Context, token string, id int64) error {
	return mapUserErr(g.client.delete(ctx, token, fmt.Sprintf("/users/%d", id)))
}

func mapUserErr(err error) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
		return domain.ErrUserNotFound
	}
	return err
}
