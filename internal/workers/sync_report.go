package workers

import (
	"github.com/avasiliev/timeshelf/internal/logger"
	"github.com/avasiliev/timeshelf/models"
)

// LogSyncReport writes the outcome of one sync cycle in a fixed shape: all
// four counters (pushed, push_failed, pulled, conflicts) plus the mode flags.
// A failed cycle is logged at warn level and states outright that local data
// was kept, because no sync failure ever deletes local records.
func LogSyncReport(l *logger.Logger, report models.SyncReport, msg string) {
	event := l.Info()
	if !report.Success {
		event = l.Warn()
		msg += ", no local data was deleted"
	}

	event.
		Int("pushed", report.Pushed).
		Int("push_failed", report.PushFailed).
		Int("pulled", report.Pulled).
		Int("conflicts", report.Conflicts).
		Bool("offline", report.Offline).
		Bool("unreachable", report.Unreachable).
		Bool("success", report.Success).
		Msg(msg)
}
