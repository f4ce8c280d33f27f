package catalog

import "strings"

// SyncConfig controls synchronization runs.
type SyncConfig struct {
	// InsertBatchSize is the number of rows per INSERT.
	InsertBatchSize int `mapstructure:"insert_batch_size" default:"50"`
	// Schedule is a cron expression for unattended runs. "off" or empty disables the scheduler.
	Schedule string `mapstructure:"schedule" default:"0 4 * * *"`
	// ArchiveReports stores every successful report in object storage.
	ArchiveReports bool `mapstructure:"archive_reports" default:"false"`
	// ArchivePrefix is the object key prefix for archived reports.
	ArchivePrefix string `mapstructure:"archive_prefix" default:"sync-reports"`
	// ArchiveKeep is the number of archived reports retained. Zero keeps all.
	ArchiveKeep int `mapstructure:"archive_keep" default:"30"`
}

// ScheduleEnabled reports whether unattended runs are configured.
func (c SyncConfig) ScheduleEnabled() bool {
	s := strings.TrimSpace(c.Schedule)
	return s != "" && !strings.EqualFold(s, "off")
}
