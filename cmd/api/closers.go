package main

import (
	"context"

	"github.com/rs/zerolog"
)

type closer struct {
	name string
	fn   func(context.Context) error
}

// closers releases resources in the reverse order they were opened.
type closers []closer

func (c *closers) add(name string, fn func(context.Context) error) {
	*c = append(*c, closer{name: name, fn: fn})
}

// closeAll runs every closer, logging failures instead of stopping.
func (c closers) closeAll(ctx context.Context, log zerolog.Logger) {
	for i := len(c) - 1; i >= 0; i-- {
		if err := c[i].fn(ctx); err != nil {
			log.Warn().Err(err).Str("resource", c[i].name).Msg("close failed")
		}
	}
}
