package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	"badajozrespira/src/domain"
	"badajozrespira/src/domain/entities"
	"badajozrespira/src/repositories"
	"badajozrespira/src/services/events"
)

type UserService struct {
	base
	repository repositories.UserRepository
}

func NewUserService(logger *slog.Logger, repository repositories.UserRepository, publisher events.Publisher) *UserService {
	return &UserService{base: newBase(logger, publisher), repository: repository}
}

// Login só compara o email com a lista de usuários. Não existe senha.
func (s *UserService) Login(ctx context.Context, email string) (entities.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return entities.User{}, domain.NewValidationError("email", "Por favor, introduce un email")
	}

	user, err := s.repository.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.logger.Info("Login with unknown email")
			return entities.User{}, err
		}
		return entities.User{}, fmt.Errorf("UserService.Login - failed to get user: %w", err)
	}

	s.logger.Info("User logged in", "user_id", user.ID, "role", user.Role)
	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]entities.User, error) {
	users, err := s.repository.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("UserService.List - failed to list users: %w", err)
	}
	return users, nil
}

func (s *UserService) Create(ctx context.Context, user entities.User) (entities.User, error) {
	user.Name = strings.TrimSpace(user.Name)
	user.Email = strings.TrimSpace(user.Email)

	if user.Name == "" {
		return entities.User{}, domain.NewValidationError("name", "El nombre es obligatorio.")
	}
	if user.Email == "" {
		return entities.User{}, domain.NewValidationError("email", "Por favor, introduce un email")
	}
	if _, err := mail.ParseAddress(user.Email); err != nil {
		return entities.User{}, domain.NewValidationError("email", "El email no es válido.")
	}
	if user.Role == "" {
		user.Role = entities.RoleEditor
	}
	if !user.Role.IsValid() {
		return entities.User{}, domain.NewValidationError("role", fmt.Sprintf("Rol desconocido: %q", user.Role))
	}

	if _, err := s.repository.GetUserByEmail(ctx, user.Email); err == nil {
		return entities.User{}, domain.NewValidationError("email", domain.ErrEmailTaken.Error())
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return entities.User{}, fmt.Errorf("UserService.Create - failed to check email: %w", err)
	}

	user.ID = s.newID()
	if err := s.repository.SaveUser(ctx, user); err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return entities.User{}, domain.NewValidationError("email", domain.ErrEmailTaken.Error())
		}
		return entities.User{}, fmt.Errorf("UserService.Create - failed to save user: %w", err)
	}

	s.publish(ctx, domain.EventEntityCreated, "user", user.ID, map[string]any{"role": user.Role})
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.repository.DeleteUser(ctx, id); err != nil {
		return fmt.Errorf("UserService.Delete - failed to delete user: %w", err)
	}
	s.publish(ctx, domain.EventEntityDeleted, "user", id, nil)
	return nil
}
