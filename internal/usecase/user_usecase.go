package usecase

import (
	"context"

	"aspiro/internal/domain/user"
	ucuser "aspiro/internal/usecase/user"
)

type UserUsecase interface {
	CreateUser(ctx context.Context, in ucuser.CreateInput) (user.User, error)
}

type User struct {
	svc *ucuser.Service
}

func NewUserUsecase(svc *ucuser.Service) *User {
	return &User{svc: svc}
}

func (u *User) CreateUser(ctx context.Context, in ucuser.CreateInput) (user.User, error) {
	return u.svc.CreateUser(ctx, in)
}
