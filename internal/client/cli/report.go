package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/gobarber/internal/client/validation"
)

// report prints the outcome of a failed screen. Validation errors list each
// field; everything else collapses into the screen's generic message.
func (a *App) report(ctx context.Context, screen, generic string, err error) {
	switch validation.KindOf(err) {
	case validation.KindNone:
		return
	case validation.KindValidation:
		var verr *validation.Error
		if errors.As(err, &verr) {
			a.println("Invalid input:")
			for _, name := range verr.FieldNames() {
				a.printf("  %s %s\n", name, verr.Fields[name])
			}
		}
		return
	case validation.KindStorage:
		a.logger.Error(ctx, screen+" failed", "kind", "storage", "error", err)
	default:
		a.logger.Warn(ctx, screen+" failed", "error", err)
	}
	a.println(generic)
}
