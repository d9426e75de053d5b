package services

import (
	"time"

	log "github.com/sirupsen/logrus"
)

// TrackTime logs how long a derived-value recomputation took. Cache hits
// never reach it, so the debug log doubles as a recompute trace.
func TrackTime(funcName string, start time.Time) {
	elapsed := time.Since(start)
	log.Debugf("%s took %d ms", funcName, elapsed.Milliseconds())
}
