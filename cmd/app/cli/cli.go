package cli

import (
	"context"

	"go.uber.org/fx"

	"exusiai.dev/cardrank/internal/app"
	"exusiai.dev/cardrank/internal/app/appcontext"
)

// Start builds the application graph in CLI mode and starts it, populating
// whatever module asks for. The returned stop function releases the
// infrastructure connections.
func Start(ctx context.Context, module fx.Option) (stop func(), err error) {
	a := app.New(appcontext.Declare(appcontext.EnvCLI), module)
	if err := a.Start(ctx); err != nil {
		return nil, err
	}

	return func() {
		_ = a.Stop(context.Background())
	}, nil
}
