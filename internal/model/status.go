package model

// DownloadStatus represents the lifecycle state of a download task.
type DownloadStatus string

const (
	// StatusPending means the task has been created but not started.
	StatusPending DownloadStatus = "pending"

	// StatusExtracting means metadata extraction is in progress.
	StatusExtracting DownloadStatus = "extracting"

	// StatusDownloading means the media transfer is in progress.
	StatusDownloading DownloadStatus = "downloading"

	// StatusProcessing means the engine finished transferring and is
	// post-processing the output (merging streams, remuxing).
	StatusProcessing DownloadStatus = "processing"

	// StatusCompleted means the task finished successfully.
	StatusCompleted DownloadStatus = "completed"

	// StatusFailed means the task failed with an error.
	StatusFailed DownloadStatus = "failed"

	// StatusCancelled means cancellation was requested before the task
	// reached a terminal state.
	StatusCancelled DownloadStatus = "cancelled"
)

// String returns the string representation of DownloadStatus.
func (s DownloadStatus) String() string {
	return string(s)
}

// IsActive returns true if the task is still making progress.
func (s DownloadStatus) IsActive() bool {
	return s == StatusPending || s == StatusExtracting || s == StatusDownloading || s == StatusProcessing
}

// IsTerminal returns true if the task can no longer change status.
func (s DownloadStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusCancelled
}
