package domain

import "time"

// ImportStatus tracks a Goodreads CSV import job through its lifecycle.
type ImportStatus string

const (
	ImportPending    ImportStatus = "pending"
	ImportProcessing ImportStatus = "processing"
	ImportCompleted  ImportStatus = "completed"
	ImportFailed     ImportStatus = "failed"
)

// Terminal reports whether the job will make no further progress.
func (s ImportStatus) Terminal() bool {
	return s == ImportCompleted || s == ImportFailed
}

// ImportJob is the server-side state of one CSV import.
type ImportJob struct {
	ID            int64        `json:"id"`
	FileName      string       `json:"file_name"`
	Status        ImportStatus `json:"status"`
	TotalRows     int          `json:"total_rows"`
	ProcessedRows int          `json:"processed_rows"`
	SuccessRows   int          `json:"success_rows"`
	FailedRows    int          `json:"failed_rows"`
	Error         string       `json:"error,omitempty"`
	CreatedAt     time.Time    `json:"created_at,omitzero"`
	CompletedAt   *time.Time   `json:"completed_at,omitempty"`
}
