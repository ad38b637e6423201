package jobs

import (
	"context"

	"car-rental-backend/internal/logger"
)

// ReconcileAvailability re-derives car availability from rental statuses and
// repairs any drift left by a crash between a rental write and the matching
// car write.
func (jr *JobRunner) ReconcileAvailability() {
	jr.runWithRecovery("ReconcileAvailability", func() {
		ctx := context.Background()

		repaired, err := jr.system.ReconcileAvailability(ctx)
		if err != nil {
			logger.Error("Failed to reconcile car availability", "error", err, "repaired", repaired)
			return
		}
		if repaired > 0 {
			logger.Info("Reconciled car availability", "repaired", repaired)
		} else {
			logger.Debug("Car availability consistent", "repaired", 0)
		}
	})
}
