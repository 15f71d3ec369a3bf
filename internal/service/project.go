package service

import (
	"fmt"

	"k8s.io/klog/v2"

	"github.com/codewright/backend/internal/model"
	"github.com/codewright/backend/internal/repository"
)

// ErrInvalidProjectType 项目类型不在 code/manual 之内
var ErrInvalidProjectType = fmt.Errorf("项目类型必须是 code 或 manual")

// ProjectService 项目管理
// 所有读写都带所有者校验，跨用户访问一律视同不存在
type ProjectService struct {
	projectRepo repository.ProjectRepository
}

func NewProjectService(projectRepo repository.ProjectRepository) *ProjectService {
	return &ProjectService{projectRepo: projectRepo}
}

func (s *ProjectService) Create(name, projectType string, ownerID uint) (*model.Project, error) {
	if projectType != "code" && projectType != "manual" {
		return nil, ErrInvalidProjectType
	}
	project := &model.Project{
		Name:    name,
		Type:    projectType,
		OwnerID: ownerID,
	}
	if err := s.projectRepo.Create(project); err != nil {
		return nil, fmt.Errorf("创建项目失败: %w", err)
	}
	klog.V(6).Infof("项目创建: id=%d, name=%s, type=%s", project.ID, name, projectType)
	return project, nil
}

func (s *ProjectService) List(ownerID uint) ([]model.Project, error) {
	return s.projectRepo.ListByOwner(ownerID)
}

func (s *ProjectService) Get(id, ownerID uint) (*model.Project, error) {
	return s.projectRepo.GetOwned(id, ownerID)
}

// Rename 改名，项目类型创建后不可变
func (s *ProjectService) Rename(id, ownerID uint, name string) (*model.Project, error) {
	project, err := s.projectRepo.GetOwned(id, ownerID)
	if err != nil {
		return nil, err
	}
	project.Name = name
	if err := s.projectRepo.Save(project); err != nil {
		return nil, fmt.Errorf("保存项目失败: %w", err)
	}
	return project, nil
}

func (s *ProjectService) Delete(id, ownerID uint) error {
	if _, err := s.projectRepo.GetOwned(id, ownerID); err != nil {
		return err
	}
	if err := s.projectRepo.Delete(id); err != nil {
		return fmt.Errorf("删除项目失败: %w", err)
	}
	klog.V(6).Infof("项目删除: id=%d", id)
	return nil
}

// ListItems 列出项目条目，含未参与导出的
func (s *ProjectService) ListItems(projectID, ownerID uint) ([]model.ProjectItem, error) {
	if _, err := s.projectRepo.GetOwned(projectID, ownerID); err != nil {
		return nil, err
	}
	return s.projectRepo.GetItems(projectID)
}
