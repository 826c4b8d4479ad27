package cli

import "context"

// withLoading shows label while fn runs. The label is cleared when fn
// returns, whatever the outcome.
func (a *App) withLoading(ctx context.Context, label string, fn func() error) error {
	a.loading = label
	a.println(label + "...")
	a.log.Debug(ctx, "loading", "label", label)
	defer func() { a.loading = "" }()

	return fn()
}
