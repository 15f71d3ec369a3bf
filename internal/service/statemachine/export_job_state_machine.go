package statemachine

import (
	"fmt"

	"k8s.io/klog/v2"
)

// JobStatus 定义导出任务的所有可能状态
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"    // 已创建，未开始处理
	JobStatusProcessing JobStatus = "processing" // 正在渲染
	JobStatusCompleted  JobStatus = "completed"  // 导出成功
	JobStatusFailed     JobStatus = "failed"     // 导出失败
)

// JobTransition 定义任务状态迁移
type JobTransition struct {
	From JobStatus
	To   JobStatus
}

// ExportJobStateMachine 导出任务状态机
type ExportJobStateMachine struct {
	allowedTransitions map[JobTransition]bool
}

// NewExportJobStateMachine 创建新的导出任务状态机
func NewExportJobStateMachine() *ExportJobStateMachine {
	sm := &ExportJobStateMachine{
		allowedTransitions: make(map[JobTransition]bool),
	}

	// 合法的状态迁移路径
	// pending -> processing -> completed/failed
	// pending -> failed（处理开始前的校验失败）
	// completed/failed 是终止态，没有出边
	transitions := []JobTransition{
		{JobStatusPending, JobStatusProcessing},
		{JobStatusProcessing, JobStatusCompleted},
		{JobStatusProcessing, JobStatusFailed},
		{JobStatusPending, JobStatusFailed},
	}

	for _, t := range transitions {
		sm.allowedTransitions[t] = true
	}

	return sm
}

// CanTransition 检查状态迁移是否合法
func (sm *ExportJobStateMachine) CanTransition(from, to JobStatus) bool {
	if from == to {
		return false // 不允许状态不变
	}
	return sm.allowedTransitions[JobTransition{From: from, To: to}]
}

// ValidateTransition 验证状态迁移并返回错误
func (sm *ExportJobStateMachine) ValidateTransition(from, to JobStatus) error {
	if !sm.CanTransition(from, to) {
		return &InvalidStateTransitionError{
			From: string(from),
			To:   string(to),
		}
	}
	return nil
}

// Transition 执行状态迁移（带日志）
func (sm *ExportJobStateMachine) Transition(from, to JobStatus, jobID string) error {
	if err := sm.ValidateTransition(from, to); err != nil {
		klog.V(6).Infof("任务状态迁移被拒绝: jobID=%s, %s -> %s, error=%v",
			jobID, from, to, err)
		return err
	}

	klog.V(6).Infof("任务状态迁移成功: jobID=%s, %s -> %s", jobID, from, to)
	return nil
}

// InvalidStateTransitionError 无效的状态迁移错误
type InvalidStateTransitionError struct {
	From string
	To   string
}

func (e *InvalidStateTransitionError) Error() string {
	return fmt.Sprintf("invalid export job state transition: %s -> %s", e.From, e.To)
}

// IsTerminal 判断状态是否为终止态（不能再迁移）
func IsTerminal(status JobStatus) bool {
	return status == JobStatusCompleted || status == JobStatusFailed
}
