package stubs

import (
	"badajozrespira/src/domain/entities"

	"github.com/brianvoe/gofakeit/v6"
)

type UserStub struct {
	user entities.User
}

func NewUserStub() UserStub {
	return UserStub{user: entities.User{
		ID:    gofakeit.UUID(),
		Name:  gofakeit.Name(),
		Email: gofakeit.Email(),
		Role:  entities.RoleEditor,
	}}
}

func (s UserStub) WithEmail(email string) UserStub {
	s.user.Email = email
	return s
}

func (s UserStub) WithRole(role entities.Role) UserStub {
	s.user.Role = role
	return s
}

func (s UserStub) Get() entities.User {
	return s.user
}
