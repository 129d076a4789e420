package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/fixware/console/internal/core/domain"
	"github.com/fixware/console/internal/core/ports"
)

// UserService implements the admin user management use cases.
type UserService struct {
	users ports.UserGateway
	log   zerolog.Logger
}

func NewUserService(users ports.UserGateway, log zerolog.Logger) *UserService {
	return &UserService{users: users, log: log}
}

func (s *UserService) ListUsers(ctx context.Context, sess *ports.Session) ([]domain.User, error) {
	return s.users.List(ctx, sess.Token)
}

// SearchUsersByName filters the full user list locally by first name, last
// name or full name. The backend exposes no name-search endpoint.
func (s *UserService) SearchUsersByName(ctx context.Context, sess *ports.Session, name string) ([]domain.User, error) {
	term := strings.ToLower(strings.TrimSpace(name))
	if term == "" {
		return nil, nil
	}

	all, err := s.users.List(ctx, sess.Token)
	if err != nil {
		return nil, err
	}

	var matched []domain.User
	for _, u := range all {
		first := strings.ToLower(u.FirstName)
		last := strings.ToLower(u.LastName)
		full := strings.ToLower(u.FullName())
		if strings.Contains(first, term) || strings.Contains(last, term) || strings.Contains(full, term) {
			matched = append(matched, u)
		}
	}
	return matched, nil
}

func (s *UserService) GetUser(ctx context.Context, sess *ports.Session, id int64) (*domain.User, error) {
	return s.users.Get(ctx, sess.Token, id)
}

func (s *UserService) CreateUser(ctx context.Context, sess *ports.Session, w ports.UserWrite) (*domain.User, error) {
	created, err := s.users.Create(ctx, sess.Token, w)
	if err != nil {
		return nil, err
	}
	s.log.Info().Int64("user_id", created.ID).Str("email", created.Email).Msg("user created")
	return created, nil
}

func (s *UserService) UpdateUser(ctx context.Context, sess *ports.Session, id int64, w ports.UserWrite) (*domain.User, error) {
	updated, err := s.users.Update(ctx, sess.Token, id, w)
	if err != nil {
		return nil, err
	}
	s.log.Info().Int64("user_id", id).Msg("user updated")
	return updated, nil
}

func (s *UserService) DeleteUser(ctx context.Context, sess *ports.Session, id int64) error {
	if err := s.users.Delete(ctx, sess.Token, id); err != nil {
		return err
	}
	s.log.Info().Int64("user_id", id).Msg("user deleted")
	return nil
}

// Roles returns the static role catalog; the backend has no enumeration
// endpoint.
func (s *UserService) Roles() []domain.Role {
	return domain.StaticRoles()
}
