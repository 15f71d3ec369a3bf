package repository

import (
	"errors"

	"github.com/codewright/backend/internal/model"
	"gorm.io/gorm"
)

type mappingRepository struct {
	db *gorm.DB
}

func NewMappingRepository(db *gorm.DB) MappingRepository {
	return &mappingRepository{db: db}
}

func (r *mappingRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.LanguageMapping{}).Count(&count).Error
	return count, err
}

func (r *mappingRepository) CreateBatch(mappings []model.LanguageMapping) error {
	if len(mappings) == 0 {
		return nil
	}
	return r.db.Create(&mappings).Error
}

func (r *mappingRepository) Create(mapping *model.LanguageMapping) error {
	return r.db.Create(mapping).Error
}

func (r *mappingRepository) List() ([]model.LanguageMapping, error) {
	var mappings []model.LanguageMapping
	err := r.db.Order("suffix").Find(&mappings).Error
	return mappings, err
}

func (r *mappingRepository) ListEnabled() ([]model.LanguageMapping, error) {
	var mappings []model.LanguageMapping
	err := r.db.Where("enabled = ?", true).Order("suffix").Find(&mappings).Error
	return mappings, err
}

func (r *mappingRepository) Get(id uint) (*model.LanguageMapping, error) {
	var mapping model.LanguageMapping
	err := r.db.First(&mapping, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &mapping, nil
}

func (r *mappingRepository) Save(mapping *model.LanguageMapping) error {
	return r.db.Save(mapping).Error
}

func (r *mappingRepository) Delete(id uint) error {
	return r.db.Delete(&model.LanguageMapping{}, id).Error
}
