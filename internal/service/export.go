package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"k8s.io/klog/v2"

	"github.com/codewright/backend/config"
	"github.com/codewright/backend/internal/domain"
	"github.com/codewright/backend/internal/eventbus"
	"github.com/codewright/backend/internal/model"
	"github.com/codewright/backend/internal/pkg/renderer"
	"github.com/codewright/backend/internal/repository"
	"github.com/codewright/backend/internal/service/assembler"
	"github.com/codewright/backend/internal/service/highlight"
	"github.com/codewright/backend/internal/service/markdown"
	"github.com/codewright/backend/internal/service/statemachine"
)

// ErrNothingToExport 项目里没有任何可导出的内容
// 这是领域错误，任务会落成 failed 记录，而不是拒绝创建任务
var ErrNothingToExport = errors.New("没有可导出的内容")

// 处理开始时的初始进度，让轮询方看到任务已经活了
const initialProgress = 10

// ExportStatistics 用户维度的导出统计
type ExportStatistics struct {
	Total       int64   `json:"total"`
	Completed   int64   `json:"completed"`
	Failed      int64   `json:"failed"`
	Recent      int64   `json:"recent"` // 最近7天
	SuccessRate float64 `json:"success_rate"`
}

// ExportService 导出任务控制器
// 一次导出在触发它的调用内同步跑完，任务记录是唯一的"异步"表象
type ExportService struct {
	cfg          *config.Config
	jobRepo      repository.ExportJobRepository
	projectRepo  repository.ProjectRepository
	sectionRepo  repository.SectionRepository
	mappings     *MappingService
	highlighter  *highlight.Highlighter
	assembler    *assembler.Assembler
	backends     map[string]renderer.Backend // 按导出类型选择渲染后端
	stateMachine *statemachine.ExportJobStateMachine
	bus          *eventbus.Bus
}

func NewExportService(
	cfg *config.Config,
	jobRepo repository.ExportJobRepository,
	projectRepo repository.ProjectRepository,
	sectionRepo repository.SectionRepository,
	mappings *MappingService,
	backends map[string]renderer.Backend,
) *ExportService {
	return &ExportService{
		cfg:          cfg,
		jobRepo:      jobRepo,
		projectRepo:  projectRepo,
		sectionRepo:  sectionRepo,
		mappings:     mappings,
		highlighter:  highlight.NewHighlighter(),
		assembler:    assembler.New(),
		backends:     backends,
		stateMachine: statemachine.NewExportJobStateMachine(),
	}
}

// SetAssembler 注入带固定时钟的组装器，测试用
func (s *ExportService) SetAssembler(a *assembler.Assembler) {
	s.assembler = a
}

// SetEventBus 注入事件总线，终态时发布事件
func (s *ExportService) SetEventBus(bus *eventbus.Bus) {
	s.bus = bus
}

// StartExport 发起一次导出
// 项目不存在或不属于该用户时直接返回 ErrNotFound，不创建任务记录；
// 其余失败都会落在任务记录里，调用方拿到终态的任务
func (s *ExportService) StartExport(ctx context.Context, projectID, userID uint, exportType string, opts assembler.Options) (*model.ExportJob, error) {
	// 1. 校验项目归属
	project, err := s.projectRepo.GetOwned(projectID, userID)
	if err != nil {
		return nil, err
	}

	// 2. 创建 pending 任务，快照选项和当时的条目数
	optsJSON, err := json.Marshal(opts)
	if err != nil {
		return nil, fmt.Errorf("序列化导出选项失败: %w", err)
	}

	job := &model.ExportJob{
		JobID:       uuid.NewString(),
		ProjectID:   project.ID,
		UserID:      userID,
		ExportType:  exportType,
		Status:      string(statemachine.JobStatusPending),
		OptionsJSON: string(optsJSON),
	}
	switch project.Type {
	case "manual":
		count, err := s.sectionRepo.Count(project.ID)
		if err != nil {
			return nil, fmt.Errorf("统计章节失败: %w", err)
		}
		job.TotalSections = int(count)
	default:
		count, err := s.projectRepo.CountItems(project.ID)
		if err != nil {
			return nil, fmt.Errorf("统计文件失败: %w", err)
		}
		job.TotalFiles = int(count)
	}
	if err := s.jobRepo.Create(job); err != nil {
		return nil, fmt.Errorf("创建导出任务失败: %w", err)
	}
	klog.V(6).Infof("导出任务创建: jobID=%s, projectID=%d, type=%s", job.JobID, project.ID, exportType)

	startedAt := time.Now()

	// 3. pending -> processing，给轮询方一个非零进度
	if err := s.moveTo(job, statemachine.JobStatusProcessing); err != nil {
		return nil, err
	}
	s.updateProgress(job, initialProgress)

	// 4-7. 渲染管线，任何错误都收进任务记录
	result, runErr := s.runExport(ctx, project, job, opts)
	elapsed := time.Since(startedAt)

	if runErr != nil {
		s.failJob(job, runErr, elapsed)
		s.publishTerminal(ctx, job, elapsed)
		return job, nil
	}

	s.completeJob(job, result, elapsed)
	s.publishTerminal(ctx, job, elapsed)
	return job, nil
}

// publishTerminal 终态事件，订阅方失败只记日志
func (s *ExportService) publishTerminal(ctx context.Context, job *model.ExportJob, elapsed time.Duration) {
	if s.bus == nil {
		return
	}
	eventType := eventbus.ExportEventCompleted
	if job.Status == string(statemachine.JobStatusFailed) {
		eventType = eventbus.ExportEventFailed
	}
	event := eventbus.ExportEvent{
		Type:       eventType,
		JobID:      job.JobID,
		ProjectID:  job.ProjectID,
		UserID:     job.UserID,
		ExportType: job.ExportType,
		FileSize:   job.FileSize,
		TotalLines: job.TotalLines,
		Duration:   elapsed,
		ErrorMsg:   job.ErrorMsg,
	}
	if err := s.bus.Publish(ctx, event); err != nil {
		klog.V(6).Infof("发布导出事件失败: jobID=%s, error=%v", job.JobID, err)
	}
}

// exportResult 管线成功后的产物信息
type exportResult struct {
	fileName   string
	filePath   string
	fileSize   int64
	totalLines int
}

// runExport 执行导出管线：取内容、逐项渲染、组装、交给渲染后端、落盘
// 只返回错误，状态流转由调用方处理
func (s *ExportService) runExport(ctx context.Context, project *model.Project, job *model.ExportJob, opts assembler.Options) (*exportResult, error) {
	backend, ok := s.backends[job.ExportType]
	if !ok {
		return nil, fmt.Errorf("不支持的导出类型: %s", job.ExportType)
	}

	var blocks []domain.RenderedBlock
	var err error
	if project.Type == "manual" {
		blocks, err = s.renderSections(project.ID)
	} else {
		blocks, err = s.renderItems(project.ID, job)
	}
	if err != nil {
		return nil, err
	}
	if len(blocks) == 0 {
		return nil, ErrNothingToExport
	}
	s.updateProgress(job, 80)

	html := s.assembler.Assemble(project, blocks, opts)
	s.updateProgress(job, 85)

	artifact, err := backend.RenderToArtifact(ctx, html, opts.PageFormat)
	if err != nil {
		return nil, fmt.Errorf("渲染产物失败: %w", err)
	}
	s.updateProgress(job, 95)

	if err := os.MkdirAll(s.cfg.Export.Dir, 0755); err != nil {
		return nil, fmt.Errorf("创建导出目录失败: %w", err)
	}
	fileName := fmt.Sprintf("export_%d_%s.%s", project.ID, job.JobID[:8], backend.FileExt())
	filePath := filepath.Join(s.cfg.Export.Dir, fileName)
	if err := os.WriteFile(filePath, artifact, 0644); err != nil {
		return nil, fmt.Errorf("写入产物失败: %w", err)
	}

	totalLines := 0
	for _, block := range blocks {
		totalLines += block.LineCount
	}

	return &exportResult{
		fileName:   fileName,
		filePath:   filePath,
		fileSize:   int64(len(artifact)),
		totalLines: totalLines,
	}, nil
}

// renderItems 渲染代码项目：按 order_index 逐个高亮
// 单个文件的高亮失败降级为纯文本，绝不中断整次导出
func (s *ExportService) renderItems(projectID uint, job *model.ExportJob) ([]domain.RenderedBlock, error) {
	items, err := s.projectRepo.GetIncludedItems(projectID)
	if err != nil {
		return nil, fmt.Errorf("读取项目文件失败: %w", err)
	}
	if len(items) == 0 {
		return nil, nil
	}

	// 整次导出用同一份映射快照
	snapshot, err := s.mappings.Snapshot()
	if err != nil {
		return nil, err
	}

	blocks := make([]domain.RenderedBlock, 0, len(items))
	for i, item := range items {
		title := item.DisplayName
		filename := ""
		if item.File != nil {
			filename = item.File.OriginalFilename
		}
		if title == "" {
			title = filename
		}

		content, readErr := s.readItemContent(item)
		if readErr != nil {
			// 读不到内容也只影响这一项
			klog.V(6).Infof("读取文件内容失败: itemID=%d, error=%v", item.ID, readErr)
			blocks = append(blocks, domain.RenderedBlock{
				ItemID:    item.ID,
				Title:     title,
				HTML:      "<pre><code>无法加载文件内容</code></pre>",
				Language:  highlight.FallbackLanguage,
				LineCount: 0,
				Mode:      domain.ModeFallback,
			})
		} else {
			language := snapshot.Resolve(filename, item.LanguageOverride)
			blocks = append(blocks, s.highlighter.Highlight(item.ID, title, content, language))
		}

		s.updateProgress(job, initialProgress+(i+1)*70/len(items))
	}
	return blocks, nil
}

func (s *ExportService) readItemContent(item model.ProjectItem) (string, error) {
	if item.File == nil {
		return "", fmt.Errorf("文件记录缺失: itemID=%d", item.ID)
	}
	data, err := os.ReadFile(item.File.StoragePath)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// renderSections 渲染操作文档项目：按 order_index 渲染章节 markdown
func (s *ExportService) renderSections(projectID uint) ([]domain.RenderedBlock, error) {
	sections, err := s.sectionRepo.GetByProject(projectID)
	if err != nil {
		return nil, fmt.Errorf("读取章节失败: %w", err)
	}

	blocks := make([]domain.RenderedBlock, 0, len(sections))
	for _, section := range sections {
		blocks = append(blocks, domain.RenderedBlock{
			ItemID:    section.ID,
			Title:     section.Title,
			HTML:      markdown.Render(section.BodyMarkdown),
			LineCount: highlight.CountLines(section.BodyMarkdown),
			Mode:      domain.ModeMarkdown,
		})
	}
	return blocks, nil
}

// moveTo 状态机校验后的状态写入
func (s *ExportService) moveTo(job *model.ExportJob, to statemachine.JobStatus) error {
	from := statemachine.JobStatus(job.Status)
	if err := s.stateMachine.Transition(from, to, job.JobID); err != nil {
		return err
	}
	job.Status = string(to)
	if err := s.jobRepo.Save(job); err != nil {
		return fmt.Errorf("更新任务状态失败: %w", err)
	}
	return nil
}

// updateProgress 进度只增不减，落库失败只记日志
func (s *ExportService) updateProgress(job *model.ExportJob, progress int) {
	if progress > 100 {
		progress = 100
	}
	if progress <= job.Progress {
		return
	}
	job.Progress = progress
	if err := s.jobRepo.Save(job); err != nil {
		klog.V(6).Infof("更新进度失败: jobID=%s, error=%v", job.JobID, err)
	}
}

// completeJob 成功收尾：记产物大小、耗时，进度拉满
func (s *ExportService) completeJob(job *model.ExportJob, result *exportResult, elapsed time.Duration) {
	now := time.Now()
	job.FileName = result.fileName
	job.FilePath = result.filePath
	job.FileSize = result.fileSize
	job.TotalLines = result.totalLines
	job.ProcessingMs = elapsed.Milliseconds()
	job.Progress = 100
	job.CompletedAt = &now
	if err := s.moveTo(job, statemachine.JobStatusCompleted); err != nil {
		klog.Errorf("完成任务落库失败: jobID=%s, error=%v", job.JobID, err)
	}
	klog.V(6).Infof("导出完成: jobID=%s, size=%d, lines=%d, elapsed=%v",
		job.JobID, result.fileSize, result.totalLines, elapsed)
}

// failJob 失败收尾：错误信息必须非空，耗时照记
func (s *ExportService) failJob(job *model.ExportJob, cause error, elapsed time.Duration) {
	msg := "导出失败"
	if cause != nil {
		msg = cause.Error()
	}
	now := time.Now()
	job.ErrorMsg = msg
	job.ProcessingMs = elapsed.Milliseconds()
	job.CompletedAt = &now
	if err := s.moveTo(job, statemachine.JobStatusFailed); err != nil {
		klog.Errorf("失败任务落库失败: jobID=%s, error=%v", job.JobID, err)
	}
	klog.V(6).Infof("导出失败: jobID=%s, error=%s", job.JobID, msg)
}

// GetJob 查询单个任务，非本人任务视同不存在
func (s *ExportService) GetJob(jobID string, userID uint) (*model.ExportJob, error) {
	job, err := s.jobRepo.GetByJobID(jobID)
	if err != nil {
		return nil, err
	}
	if job.UserID != userID {
		return nil, repository.ErrNotFound
	}
	return job, nil
}

// ListByProject 项目维度的导出历史，先校验项目归属
func (s *ExportService) ListByProject(projectID, userID uint, limit, offset int) ([]model.ExportJob, error) {
	if _, err := s.projectRepo.GetOwned(projectID, userID); err != nil {
		return nil, err
	}
	return s.jobRepo.ListByProject(projectID, normalizeLimit(limit, 20), offset)
}

// ListByUser 用户维度的导出历史
func (s *ExportService) ListByUser(userID uint, limit, offset int) ([]model.ExportJob, error) {
	return s.jobRepo.ListByUser(userID, normalizeLimit(limit, 50), offset)
}

// DeleteJob 删除任务记录并顺带清掉产物文件
func (s *ExportService) DeleteJob(jobID string, userID uint) error {
	job, err := s.GetJob(jobID, userID)
	if err != nil {
		return err
	}
	if job.FilePath != "" {
		// 产物文件可能已经被人工清理，删不掉不算错
		if err := os.Remove(job.FilePath); err != nil && !os.IsNotExist(err) {
			klog.V(6).Infof("删除产物文件失败: path=%s, error=%v", job.FilePath, err)
		}
	}
	return s.jobRepo.Delete(job.ID)
}

// Statistics 用户维度导出统计
func (s *ExportService) Statistics(userID uint) (*ExportStatistics, error) {
	total, err := s.jobRepo.CountByUser(userID)
	if err != nil {
		return nil, err
	}
	completed, err := s.jobRepo.CountByUserAndStatus(userID, string(statemachine.JobStatusCompleted))
	if err != nil {
		return nil, err
	}
	failed, err := s.jobRepo.CountByUserAndStatus(userID, string(statemachine.JobStatusFailed))
	if err != nil {
		return nil, err
	}
	recent, err := s.jobRepo.CountByUserSince(userID, time.Now().AddDate(0, 0, -7))
	if err != nil {
		return nil, err
	}

	stats := &ExportStatistics{
		Total:     total,
		Completed: completed,
		Failed:    failed,
		Recent:    recent,
	}
	if total > 0 {
		stats.SuccessRate = float64(completed) / float64(total) * 100
	}
	return stats, nil
}

// CleanupStuckJobs 启动时把遗留在 processing 的任务标记为失败
// 导出是同步执行的，进程重启后不可能还有真正在跑的任务
func (s *ExportService) CleanupStuckJobs() (int64, error) {
	return s.jobRepo.MarkStuckProcessing("服务重启，任务中断")
}

func normalizeLimit(limit, fallback int) int {
	if limit <= 0 || limit > 100 {
		return fallback
	}
	return limit
}
