package observability

import (
	"log/slog"

	"github.com/aretw0/ostia/pkg/domain"
)

// LoggingHooks returns lifecycle hooks that report merge decisions at Debug
// level. Attempts are not logged; they are implied by the outcome.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnMerge: func(e *domain.MergeEvent) {
			logger.Debug("state merged", "blue", e.Blue, "red", e.Red)
		},
		OnRollback: func(e *domain.MergeEvent) {
			logger.Debug("merge rejected", "blue", e.Blue, "red", e.Red, "reason", e.Reason)
		},
		OnPromote: func(e *domain.MergeEvent) {
			logger.Debug("state promoted", "state", e.Blue)
		},
	}
}
