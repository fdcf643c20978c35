package apiclient

import (
	"context"
	"fmt"

	"myvet/internal/platform/httpclient"
	"myvet/internal/result"
)

// Call hace un request JSON y lo devuelve como Result. op queda como
// prefijo del error ("owner: list pets: ...").
func Call[T any](ctx context.Context, c *httpclient.Client, op, method, path string, in any) result.Result[T] {
	var out T
	if err := c.DoJSON(ctx, method, path, nil, in, &out); err != nil {
		return result.Fail[T](fmt.Errorf("%s: %w", op, err))
	}
	return result.Ok(out)
}

// Exec es Call para endpoints cuyo body no interesa (DELETE => true/false).
func Exec(ctx context.Context, c *httpclient.Client, op, method, path string, in any) result.Result[bool] {
	if err := c.DoJSON(ctx, method, path, nil, in, nil); err != nil {
		return result.Fail[bool](fmt.Errorf("%s: %w", op, err))
	}
	return result.Ok(true)
}
