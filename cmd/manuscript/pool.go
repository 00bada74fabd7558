package main

import (
	"context"
	"fmt"

	manuscript "github.com/alnah/go-manuscript"
)

// CLIConverter is the conversion surface the CLI depends on.
type CLIConverter interface {
	Convert(ctx context.Context, input manuscript.Input) (*manuscript.ConvertResult, error)
}

// Compile-time interface implementation check.
var _ CLIConverter = (*manuscript.Converter)(nil)

// Pool abstracts converter pool operations for testability.
type Pool interface {
	Acquire() (CLIConverter, error)
	Release(CLIConverter)
	Size() int
	Close() error
}

// poolAdapter exposes a *manuscript.ConverterPool as a Pool.
type poolAdapter struct {
	pool *manuscript.ConverterPool
}

// Compile-time check that poolAdapter implements Pool.
var _ Pool = (*poolAdapter)(nil)

func newConverterPool(size int, opts ...manuscript.Option) Pool {
	return &poolAdapter{pool: manuscript.NewConverterPool(size, opts...)}
}

func (a *poolAdapter) Acquire() (CLIConverter, error) {
	conv, err := a.pool.Acquire()
	if err != nil {
		return nil, err
	}
	return conv, nil
}

// Release panics on a converter the pool did not hand out.
func (a *poolAdapter) Release(c CLIConverter) {
	conv, ok := c.(*manuscript.Converter)
	if !ok {
		panic(fmt.Sprintf("poolAdapter.Release: unexpected type %T", c))
	}
	a.pool.Release(conv)
}

func (a *poolAdapter) Size() int { return a.pool.Size() }

func (a *poolAdapter) Close() error { return a.pool.Close() }
