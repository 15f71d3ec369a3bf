package eventbus

import (
	"context"
	"time"
)

type ExportEventType string

const (
	ExportEventCompleted ExportEventType = "ExportCompleted"
	ExportEventFailed    ExportEventType = "ExportFailed"
)

// ExportEvent 导出任务进入终态时发布
type ExportEvent struct {
	Type       ExportEventType
	JobID      string
	ProjectID  uint
	UserID     uint
	ExportType string
	FileSize   int64
	TotalLines int
	Duration   time.Duration
	ErrorMsg   string
}

type ExportEventHandler = func(ctx context.Context, event ExportEvent) error
