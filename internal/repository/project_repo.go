package repository

import (
	"errors"

	"github.com/codewright/backend/internal/model"
	"gorm.io/gorm"
)

type projectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(project *model.Project) error {
	return r.db.Create(project).Error
}

func (r *projectRepository) ListByOwner(ownerID uint) ([]model.Project, error) {
	var projects []model.Project
	err := r.db.Where("owner_id = ?", ownerID).Order("created_at desc").Find(&projects).Error
	return projects, err
}

func (r *projectRepository) Get(id uint) (*model.Project, error) {
	var project model.Project
	err := r.db.First(&project, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// GetOwned 按所有者查询项目，不属于该用户时视同不存在
func (r *projectRepository) GetOwned(id, ownerID uint) (*model.Project, error) {
	var project model.Project
	err := r.db.Where("id = ? AND owner_id = ?", id, ownerID).First(&project).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepository) Save(project *model.Project) error {
	return r.db.Save(project).Error
}

func (r *projectRepository) Delete(id uint) error {
	return r.db.Delete(&model.Project{}, id).Error
}

func (r *projectRepository) GetItems(projectID uint) ([]model.ProjectItem, error) {
	var items []model.ProjectItem
	err := r.db.Preload("File").
		Where("project_id = ?", projectID).
		Order("order_index").
		Find(&items).Error
	return items, err
}

// GetIncludedItems 按 order_index 升序返回参与导出的文件项
func (r *projectRepository) GetIncludedItems(projectID uint) ([]model.ProjectItem, error) {
	var items []model.ProjectItem
	err := r.db.Preload("File").
		Where("project_id = ? AND include_in_export = ?", projectID, true).
		Order("order_index").
		Find(&items).Error
	return items, err
}

func (r *projectRepository) CountItems(projectID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.ProjectItem{}).Where("project_id = ?", projectID).Count(&count).Error
	return count, err
}
