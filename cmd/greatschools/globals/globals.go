package globals

import (
	"context"
	"greatschools/lib/greatschools"
)

type ctxKey struct{}

type Value struct {
	Client *greatschools.Client
}

func Set(ctx context.Context, value *Value) context.Context {
	return context.WithValue(ctx, ctxKey{}, value)
}

func Get(ctx context.Context) *Value {
	return ctx.Value(ctxKey{}).(*Value)
}
