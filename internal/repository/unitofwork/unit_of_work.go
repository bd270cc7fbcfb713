package unitofwork

import (
	"context"

	"shopchat-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	NotificationRepository() contract.NotificationRepository
}
