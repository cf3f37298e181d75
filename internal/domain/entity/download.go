package entity

import "time"

// DownloadState is the lifecycle state of a download.
type DownloadState string

const (
	DownloadInProgress DownloadState = "in_progress"
	DownloadCompleted  DownloadState = "completed"
	DownloadFailed     DownloadState = "failed"
	DownloadCancelled  DownloadState = "cancelled"
)

// Download is an entry of the downloads list.
type Download struct {
	ID          int64
	URL         string
	Domain      string // eTLD+1 of URL
	Filename    string
	Destination string
	State       DownloadState
	StartedAt   time.Time
}

// IsActive reports whether the download is still running. Burns only ever
// clear inactive downloads.
func (d *Download) IsActive() bool {
	return d.State == DownloadInProgress
}
