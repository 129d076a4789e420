package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/fixware/console/internal/api/metrics"
	"github.com/fixware/console/internal/core/paging"
	"github.com/fixware/console/internal/core/ports"
)

// recoverSubject and recoverBody reproduce the wording of the recovery
// email the backend dispatches. The token link is appended by the backend.
const (
	recoverSubject = "Recuperação de Senha"
	recoverBody    = "Recuperação de Senha: você tem 30 minutos para utilizar o token contido nesse email."
)

// AuthService owns login, logout and the password-recovery flow.
type AuthService struct {
	gateway  ports.AuthGateway
	sessions ports.SessionStore
	log      zerolog.Logger
}

func NewAuthService(gateway ports.AuthGateway, sessions ports.SessionStore, log zerolog.Logger) *AuthService {
	return &AuthService{gateway: gateway, sessions: sessions, log: log}
}

// Login exchanges credentials for a bearer token, fetches the profile and
// creates the session. On bad credentials nothing is stored and
// domain.ErrInvalidCredentials is returned.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.Session, error) {
	token, err := s.gateway.Token(ctx, email, password)
	if err != nil {
		return nil, err
	}

	user, err := s.gateway.Me(ctx, token)
	if err != nil {
		return nil, err
	}

	sess := &ports.Session{
		Token: token,
		User:  *user,
		Pager: paging.New(),
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, err
	}

	metrics.SessionsStartedTotal.Inc()
	s.log.Info().Int64("user_id", user.ID).Str("session_id", sess.ID).Msg("session created")
	return sess, nil
}

// Logout destroys the session.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return err
	}
	s.log.Info().Str("session_id", sessionID).Msg("session destroyed")
	return nil
}

// RecoverPassword asks the backend to dispatch a recovery email.
func (s *AuthService) RecoverPassword(ctx context.Context, email string) error {
	return s.gateway.RecoverToken(ctx, ports.RecoverRequest{
		To:      email,
		Subject: recoverSubject,
		Body:    recoverBody,
	})
}

// ResetPassword redeems a recovery token for a new password.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	return s.gateway.NewPassword(ctx, token, newPassword)
}
