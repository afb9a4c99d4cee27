package db

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	sessionCtxKey = uuid.New()
)

// OpenSession reuses the session already bound to ctx, if any.
func OpenSession(ctx context.Context, db *gorm.DB) (context.Context, *gorm.DB) {
	tx, ok := ctx.Value(sessionCtxKey).(*gorm.DB)
	if ok {
		return ctx, tx
	}

	return WithSession(ctx, db)
}

func WithSession(ctx context.Context, db *gorm.DB) (context.Context, *gorm.DB) {
	tx := db.WithContext(ctx)
	return context.WithValue(ctx, sessionCtxKey, tx), tx
}

// Transaction runs fn inside a transaction bound to the returned context so
// nested OpenSession calls join it.
func Transaction(ctx context.Context, db *gorm.DB, fn func(ctx context.Context, tx *gorm.DB) error) error {
	_, session := OpenSession(ctx, db)
	return session.Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, sessionCtxKey, tx), tx)
	})
}
