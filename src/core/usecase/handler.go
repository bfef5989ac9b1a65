// Package usecase contains the application's command and query handlers.
// Each use case is one type with a Handle method; handlers orchestrate
// repository calls and map entities to the result types in dto.go.
package usecase

import "context"

// Handler executes one command or query.
type Handler[C, R any] interface {
	Handle(ctx context.Context, cmd C) (R, error)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc[C, R any] func(ctx context.Context, cmd C) (R, error)

// Handle calls f(ctx, cmd).
func (f HandlerFunc[C, R]) Handle(ctx context.Context, cmd C) (R, error) {
	return f(ctx, cmd)
}

// Validator checks a command before it is handled.
type Validator interface {
	Validate(s any) error
}

// Validated runs v against every command before passing it to next.
// Nothing in next executes when validation fails.
func Validated[C, R any](v Validator, next func(context.Context, C) (R, error)) Handler[C, R] {
	return HandlerFunc[C, R](func(ctx context.Context, cmd C) (R, error) {
		if err := v.Validate(cmd); err != nil {
			var zero R
			return zero, err
		}
		return next(ctx, cmd)
	})
}

// totalPages returns ceil(total / pageSize); zero page size yields zero pages.
func totalPages(total, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}
