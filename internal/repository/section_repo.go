package repository

import (
	"errors"

	"github.com/codewright/backend/internal/model"
	"gorm.io/gorm"
)

type sectionRepository struct {
	db *gorm.DB
}

func NewSectionRepository(db *gorm.DB) SectionRepository {
	return &sectionRepository{db: db}
}

func (r *sectionRepository) Create(section *model.ManualSection) error {
	return r.db.Create(section).Error
}

// GetByProject 按 order_index 升序返回章节
func (r *sectionRepository) GetByProject(projectID uint) ([]model.ManualSection, error) {
	var sections []model.ManualSection
	err := r.db.Where("project_id = ?", projectID).Order("order_index").Find(&sections).Error
	return sections, err
}

func (r *sectionRepository) Get(id uint) (*model.ManualSection, error) {
	var section model.ManualSection
	err := r.db.First(&section, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &section, nil
}

func (r *sectionRepository) Save(section *model.ManualSection) error {
	return r.db.Save(section).Error
}

func (r *sectionRepository) Delete(id uint) error {
	return r.db.Delete(&model.ManualSection{}, id).Error
}

func (r *sectionRepository) Count(projectID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.ManualSection{}).Where("project_id = ?", projectID).Count(&count).Error
	return count, err
}

// CompactAfter 删除章节后把后续章节的 order_index 前移一位
func (r *sectionRepository) CompactAfter(projectID uint, orderIndex int) error {
	return r.db.Model(&model.ManualSection{}).
		Where("project_id = ? AND order_index > ?", projectID, orderIndex).
		UpdateColumn("order_index", gorm.Expr("order_index - 1")).Error
}

func (r *sectionRepository) UpdateOrder(projectID, sectionID uint, orderIndex int) error {
	return r.db.Model(&model.ManualSection{}).
		Where("id = ? AND project_id = ?", sectionID, projectID).
		Update("order_index", orderIndex).Error
}
