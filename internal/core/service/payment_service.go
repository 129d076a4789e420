package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/fixware/console/internal/core/domain"
	"github.com/fixware/console/internal/core/ports"
)

// PaymentService exposes the admin payment listing and maintenance.
// Payment creation happens through OrderService.RegisterPayment, which owns
// the dual payment/order write.
type PaymentService struct {
	payments ports.PaymentGateway
	log      zerolog.Logger
}

func NewPaymentService(payments ports.PaymentGateway, log zerolog.Logger) *PaymentService {
	return &PaymentService{payments: payments, log: log}
}

func (s *PaymentService) ListPayments(ctx context.Context, sess *ports.Session) ([]domain.Payment, error) {
	return s.payments.List(ctx, sess.Token)
}

func (s *PaymentService) UpdatePayment(ctx context.Context, sess *ports.Session, id int64, p domain.Payment) (*domain.Payment, error) {
	updated, err := s.payments.Update(ctx, sess.Token, id, p)
	if err != nil {
		return nil, err
	}
	s.log.Info().Int64("payment_id", id).Msg("payment updated")
	return updated, nil
}

func (s *PaymentService) DeletePayment(ctx context.Context, sess *ports.Session, id int64) error {
	if err := s.payments.Delete(ctx, sess.Token, id); err != nil {
		return err
	}
	s.log.Info().Int64("payment_id", id).Msg("payment deleted")
	return nil
}
