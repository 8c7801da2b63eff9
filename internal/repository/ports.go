package repository

import "context"

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

//counterfeiter:generate -o fake -fake-name Database . Database
type Database interface {
	MigrateModels(models ...any) error
	Create(ctx context.Context, record any) error
	GetOneBy(ctx context.Context, column string, value any, entity any) error
}
