package repository

import (
	"errors"
	"time"

	"github.com/codewright/backend/internal/model"
)

// ErrNotFound 记录不存在错误
var ErrNotFound = errors.New("record not found")

type ProjectRepository interface {
	Create(project *model.Project) error
	ListByOwner(ownerID uint) ([]model.Project, error)
	Get(id uint) (*model.Project, error)
	GetOwned(id, ownerID uint) (*model.Project, error)
	Save(project *model.Project) error
	Delete(id uint) error
	GetItems(projectID uint) ([]model.ProjectItem, error)
	GetIncludedItems(projectID uint) ([]model.ProjectItem, error)
	CountItems(projectID uint) (int64, error)
}

type SectionRepository interface {
	Create(section *model.ManualSection) error
	GetByProject(projectID uint) ([]model.ManualSection, error)
	Get(id uint) (*model.ManualSection, error)
	Save(section *model.ManualSection) error
	Delete(id uint) error
	Count(projectID uint) (int64, error)
	CompactAfter(projectID uint, orderIndex int) error
	UpdateOrder(projectID, sectionID uint, orderIndex int) error
}

type MappingRepository interface {
	Count() (int64, error)
	CreateBatch(mappings []model.LanguageMapping) error
	Create(mapping *model.LanguageMapping) error
	List() ([]model.LanguageMapping, error)
	ListEnabled() ([]model.LanguageMapping, error)
	Get(id uint) (*model.LanguageMapping, error)
	Save(mapping *model.LanguageMapping) error
	Delete(id uint) error
}

type ExportJobRepository interface {
	Create(job *model.ExportJob) error
	Get(id uint) (*model.ExportJob, error)
	GetByJobID(jobID string) (*model.ExportJob, error)
	Save(job *model.ExportJob) error
	ListByProject(projectID uint, limit, offset int) ([]model.ExportJob, error)
	ListByUser(userID uint, limit, offset int) ([]model.ExportJob, error)
	Delete(id uint) error
	CountByUser(userID uint) (int64, error)
	CountByUserAndStatus(userID uint, status string) (int64, error)
	CountByUserSince(userID uint, since time.Time) (int64, error)
	MarkStuckProcessing(errorMsg string) (int64, error)
}
