package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/fixware/console/internal/core/domain"
	"github.com/fixware/console/internal/core/ports"
)

// ProductService implements the admin product catalog use cases.
type ProductService struct {
	products ports.ProductGateway
	log      zerolog.Logger
}

func NewProductService(products ports.ProductGateway, log zerolog.Logger) *ProductService {
	return &ProductService{products: products, log: log}
}

func (s *ProductService) ListProducts(ctx context.Context, sess *ports.Session, name string) ([]domain.Product, error) {
	return s.products.List(ctx, sess.Token, name)
}

func (s *ProductService) GetProduct(ctx context.Context, sess *ports.Session, id int64) (*domain.Product, error) {
	return s.products.Get(ctx, sess.Token, id)
}

func (s *ProductService) CreateProduct(ctx context.Context, sess *ports.Session, w ports.ProductWrite) (*domain.Product, error) {
	created, err := s.products.Create(ctx, sess.Token, w)
	if err != nil {
		return nil, err
	}
	s.log.Info().Int64("product_id", created.ID).Str("name", created.Name).Msg("product created")
	return created, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, sess *ports.Session, id int64, w ports.ProductWrite) (*domain.Product, error) {
	updated, err := s.products.Update(ctx, sess.Token, id, w)
	if err != nil {
		return nil, err
	}
	s.log.Info().Int64("product_id", id).Msg("product updated")
	return updated, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, sess *ports.Session, id int64) error {
	if err := s.products.Delete(ctx, sess.Token, id); err != nil {
		return err
	}
	s.log.Info().Int64("product_id", id).Msg("product deleted")
	return nil
}
