package repository

import (
	"errors"
	"time"

	"github.com/codewright/backend/internal/model"
	"gorm.io/gorm"
)

type exportJobRepository struct {
	db *gorm.DB
}

func NewExportJobRepository(db *gorm.DB) ExportJobRepository {
	return &exportJobRepository{db: db}
}

func (r *exportJobRepository) Create(job *model.ExportJob) error {
	return r.db.Create(job).Error
}

func (r *exportJobRepository) Get(id uint) (*model.ExportJob, error) {
	var job model.ExportJob
	err := r.db.First(&job, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *exportJobRepository) GetByJobID(jobID string) (*model.ExportJob, error) {
	var job model.ExportJob
	err := r.db.Where("job_id = ?", jobID).First(&job).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *exportJobRepository) Save(job *model.ExportJob) error {
	return r.db.Save(job).Error
}

// ListByProject 按创建时间倒序分页
func (r *exportJobRepository) ListByProject(projectID uint, limit, offset int) ([]model.ExportJob, error) {
	var jobs []model.ExportJob
	err := r.db.Where("project_id = ?", projectID).
		Order("created_at desc").
		Limit(limit).Offset(offset).
		Find(&jobs).Error
	return jobs, err
}

func (r *exportJobRepository) ListByUser(userID uint, limit, offset int) ([]model.ExportJob, error) {
	var jobs []model.ExportJob
	err := r.db.Where("user_id = ?", userID).
		Order("created_at desc").
		Limit(limit).Offset(offset).
		Find(&jobs).Error
	return jobs, err
}

func (r *exportJobRepository) Delete(id uint) error {
	return r.db.Delete(&model.ExportJob{}, id).Error
}

func (r *exportJobRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.ExportJob{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *exportJobRepository) CountByUserAndStatus(userID uint, status string) (int64, error) {
	var count int64
	err := r.db.Model(&model.ExportJob{}).
		Where("user_id = ? AND status = ?", userID, status).
		Count(&count).Error
	return count, err
}

func (r *exportJobRepository) CountByUserSince(userID uint, since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&model.ExportJob{}).
		Where("user_id = ? AND created_at >= ?", userID, since).
		Count(&count).Error
	return count, err
}

// MarkStuckProcessing 启动时兜底：把遗留在 processing 的任务标记为失败
// 导出在触发它的调用内同步执行，进程重启后不可能还有真正在跑的任务
func (r *exportJobRepository) MarkStuckProcessing(errorMsg string) (int64, error) {
	result := r.db.Model(&model.ExportJob{}).
		Where("status = ?", "processing").
		Updates(map[string]interface{}{
			"status":    "failed",
			"error_msg": errorMsg,
		})
	return result.RowsAffected, result.Error
}
