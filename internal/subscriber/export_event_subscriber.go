package subscriber

import (
	"context"

	"k8s.io/klog/v2"

	"github.com/codewright/backend/internal/eventbus"
)

// ExportEventSubscriber 把导出终态事件写进日志，作为审计轨迹
type ExportEventSubscriber struct{}

func NewExportEventSubscriber() *ExportEventSubscriber {
	return &ExportEventSubscriber{}
}

func (s *ExportEventSubscriber) Register(bus *eventbus.Bus) {
	if bus == nil {
		return
	}
	bus.Subscribe(eventbus.ExportEventCompleted, s.handleCompleted)
	bus.Subscribe(eventbus.ExportEventFailed, s.handleFailed)
}

func (s *ExportEventSubscriber) handleCompleted(_ context.Context, event eventbus.ExportEvent) error {
	klog.Infof("导出完成: jobID=%s, projectID=%d, userID=%d, type=%s, size=%d, lines=%d, elapsed=%v",
		event.JobID, event.ProjectID, event.UserID, event.ExportType,
		event.FileSize, event.TotalLines, event.Duration)
	return nil
}

func (s *ExportEventSubscriber) handleFailed(_ context.Context, event eventbus.ExportEvent) error {
	klog.Warningf("导出失败: jobID=%s, projectID=%d, userID=%d, type=%s, elapsed=%v, error=%s",
		event.JobID, event.ProjectID, event.UserID, event.ExportType,
		event.Duration, event.ErrorMsg)
	return nil
}
