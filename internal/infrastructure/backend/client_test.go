package backend

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/fixware/console/internal/core/domain"
	"github.com/fixware/console/internal/core/ports"
)

func testClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(Config{
		BaseURL:      srv.URL,
		ClientID:     "client-id",
		ClientSecret: "client-secret",
	}, zerolog.Nop())
}

func TestDo_UnauthorizedMapsToSessionExpired(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := NewOrderGateway(client).Get(context.Background(), "stale-token", 1)
	assert.ErrorIs(t, err, domain.ErrSessionExpired)
}

func TestDo_ErrorCarriesStatusAndBody(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte("delivery date in the past"))
	})

	_, err := NewOrderGateway(client).Create(context.Background(), "tok", ports.OrderWrite{})

	var apiErr *APIError
	if assert.ErrorAs(t, err, &apiErr) {
		assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
		assert.Equal(t, "delivery date in the past", apiErr.Body)
	}
}

func TestDo_AttachesBearerToken(t *testing.T) {
	var got string
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":1}`))
	})

	_, err := NewOrderGateway(client).Get(context.Background(), "tok-123", 1)
	assert.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", got)
}

func TestDo_NonJSONSuccessLeavesResultEmpty(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("ok"))
	})

	order, err := NewOrderGateway(client).Get(context.Background(), "tok", 1)
	assert.NoError(t, err)
	assert.Equal(t, &domain.Order{}, order)
}

func TestOrderList_NormalizesEnvelope(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"content":[{"id":1},{"id":2}],"totalElements":12,"totalPages":6}`))
	})

	page, err := NewOrderGateway(client).List(context.Background(), "tok", ports.ListQuery{})
	assert.NoError(t, err)
	assert.Len(t, page.Content, 2)
	assert.Equal(t, int64(12), page.TotalElements)
	assert.Equal(t, 6, page.TotalPages)
}

func TestOrderList_NormalizesBareArray(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":7},{"id":8},{"id":9}]`))
	})

	page, err := NewOrderGateway(client).List(context.Background(), "tok", ports.ListQuery{})
	assert.NoError(t, err)
	assert.Len(t, page.Content, 3)
	assert.Equal(t, int64(3), page.TotalElements)
	assert.Equal(t, 1, page.TotalPages)
}

func TestOrderListAll_DropsUserScope(t *testing.T) {
	var gotPath string
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		assert.Empty(t, r.URL.Query().Get("userId"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	})

	_, err := NewOrderGateway(client).ListAll(context.Background(), "tok", ports.ListQuery{UserID: 42})
	assert.NoError(t, err)
	assert.Equal(t, "/orders/allorders", gotPath)
}

func TestListPath_BuildsQuery(t *testing.T) {
	assert.Equal(t, "/orders", listPath("/orders", ports.ListQuery{}))
	assert.Equal(t, "/orders?size=10&sort=id%2Cdesc",
		listPath("/orders", ports.ListQuery{Sort: "id,desc", Size: 10}))
	assert.Equal(t, "/orders?page=2&size=5&userId=9",
		listPath("/orders", ports.ListQuery{Size: 5, Page: 2, UserID: 9}))
}

func TestAuthToken_SendsPasswordGrant(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "client-id", user)
		assert.Equal(t, "client-secret", pass)

		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "password", r.PostForm.Get("grant_type"))
		assert.Equal(t, "ana@example.com", r.PostForm.Get("username"))
		assert.Equal(t, "secret123", r.PostForm.Get("password"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"tok-abc","token_type":"Bearer","expires_in":86400}`))
	})

	token, err := NewAuthGateway(client).Token(context.Background(), "ana@example.com", "secret123")
	assert.NoError(t, err)
	assert.Equal(t, "tok-abc", token)
}

func TestAuthToken_RejectionMapsToInvalidCredentials(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusUnauthorized} {
		client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		})
		_, err := NewAuthGateway(client).Token(context.Background(), "ana@example.com", "wrong")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	}
}

func TestAuthToken_EmptyTokenMapsToInvalidCredentials(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":""}`))
	})

	_, err := NewAuthGateway(client).Token(context.Background(), "ana@example.com", "secret123")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestGet_NotFoundMapsToDomainError(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := NewOrderGateway(client).Get(context.Background(), "tok", 99)
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestPing_AnyResponseCountsAsReachable(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	assert.NoError(t, client.Ping(context.Background()))

	unreachable := New(Config{BaseURL: "http://127.0.0.1:1"}, zerolog.Nop())
	assert.Error(t, unreachable.Ping(context.Background()))
}

func TestPing_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := New(Config{BaseURL: srv.URL}, zerolog.Nop())
	srv.Close()

	err := client.Ping(context.Background())
	assert.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrSessionExpired))
}
