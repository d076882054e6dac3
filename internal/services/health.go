package services

import (
	"context"
	"time"

	"github.com/shirou/gopsutil/v3/disk"
)

type HealthReport struct {
	Status         string    `json:"status"`
	Database       string    `json:"database"`
	UploadFolder   string    `json:"upload_folder"`
	TotalFiles     int       `json:"total_files"`
	DiskTotalBytes int64     `json:"disk_total_bytes"`
	DiskUsedBytes  int64     `json:"disk_used_bytes"`
	CheckedAt      time.Time `json:"checked_at"`
}

// CaptureHealth reports database reachability, registry size and disk usage
// of the upload folder. Disk usage falls back to / when the folder is not local.
func CaptureHealth(ctx context.Context, store *RecordStore, registry *UploadRegistry, uploadFolder string) HealthReport {
	report := HealthReport{
		Status:       "running",
		Database:     "ok",
		UploadFolder: uploadFolder,
		CheckedAt:    time.Now().UTC(),
	}
	if registry != nil {
		report.TotalFiles = registry.Count()
	}
	if store != nil {
		if err := store.Ping(ctx); err != nil {
			report.Status = "degraded"
			report.Database = err.Error()
		}
	}
	diskStat, err := disk.UsageWithContext(ctx, uploadFolder)
	if err != nil {
		diskStat, err = disk.UsageWithContext(ctx, "/")
	}
	if err == nil && diskStat != nil {
		report.DiskTotalBytes = int64(diskStat.Total)
		report.DiskUsedBytes = int64(diskStat.Used)
	}
	return report
}
