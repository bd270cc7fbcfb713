package unitofwork

import "context"

// RepositoryFactory hands out request-scoped units of work so services never
// hold a raw DB handle.
type RepositoryFactory interface {
	NewUnitOfWork(ctx context.Context) UnitOfWork
}
