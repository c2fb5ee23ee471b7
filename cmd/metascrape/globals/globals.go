package globals

import (
	"context"

	"metascrape/internal/scrapers/metacritic"
)

type keyType int

const key keyType = 0

type Value struct {
	Client *metacritic.Client
}

func Set(ctx context.Context, value *Value) context.Context {
	return context.WithValue(ctx, key, value)
}

func Get(ctx context.Context) *Value {
	return ctx.Value(key).(*Value)
}
