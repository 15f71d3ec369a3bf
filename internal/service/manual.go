package service

import (
	"fmt"

	"k8s.io/klog/v2"

	"github.com/codewright/backend/internal/model"
	"github.com/codewright/backend/internal/repository"
)

// ManualService 操作文档章节管理
// 章节按 order_index 排序，删除后压缩序号保持连续
type ManualService struct {
	projectRepo repository.ProjectRepository
	sectionRepo repository.SectionRepository
}

func NewManualService(projectRepo repository.ProjectRepository, sectionRepo repository.SectionRepository) *ManualService {
	return &ManualService{projectRepo: projectRepo, sectionRepo: sectionRepo}
}

// ownedManualProject 归属校验，顺带确认项目类型
func (s *ManualService) ownedManualProject(projectID, ownerID uint) (*model.Project, error) {
	project, err := s.projectRepo.GetOwned(projectID, ownerID)
	if err != nil {
		return nil, err
	}
	if project.Type != "manual" {
		return nil, fmt.Errorf("项目 %d 不是操作文档项目", projectID)
	}
	return project, nil
}

// CreateSection 新章节追加到末尾
func (s *ManualService) CreateSection(projectID, ownerID uint, title, bodyMarkdown string) (*model.ManualSection, error) {
	if _, err := s.ownedManualProject(projectID, ownerID); err != nil {
		return nil, err
	}
	count, err := s.sectionRepo.Count(projectID)
	if err != nil {
		return nil, fmt.Errorf("统计章节失败: %w", err)
	}
	section := &model.ManualSection{
		ProjectID:    projectID,
		Title:        title,
		BodyMarkdown: bodyMarkdown,
		OrderIndex:   int(count),
	}
	if err := s.sectionRepo.Create(section); err != nil {
		return nil, fmt.Errorf("创建章节失败: %w", err)
	}
	klog.V(6).Infof("章节创建: projectID=%d, sectionID=%d, order=%d", projectID, section.ID, section.OrderIndex)
	return section, nil
}

func (s *ManualService) ListSections(projectID, ownerID uint) ([]model.ManualSection, error) {
	if _, err := s.ownedManualProject(projectID, ownerID); err != nil {
		return nil, err
	}
	return s.sectionRepo.GetByProject(projectID)
}

// getOwnedSection 取章节并校验它确实属于该用户的项目
func (s *ManualService) getOwnedSection(sectionID, ownerID uint) (*model.ManualSection, error) {
	section, err := s.sectionRepo.Get(sectionID)
	if err != nil {
		return nil, err
	}
	if _, err := s.projectRepo.GetOwned(section.ProjectID, ownerID); err != nil {
		return nil, err
	}
	return section, nil
}

func (s *ManualService) UpdateSection(sectionID, ownerID uint, title, bodyMarkdown string) (*model.ManualSection, error) {
	section, err := s.getOwnedSection(sectionID, ownerID)
	if err != nil {
		return nil, err
	}
	section.Title = title
	section.BodyMarkdown = bodyMarkdown
	if err := s.sectionRepo.Save(section); err != nil {
		return nil, fmt.Errorf("保存章节失败: %w", err)
	}
	return section, nil
}

// DeleteSection 删除后把后面的章节序号前移，保持连续
func (s *ManualService) DeleteSection(sectionID, ownerID uint) error {
	section, err := s.getOwnedSection(sectionID, ownerID)
	if err != nil {
		return err
	}
	if err := s.sectionRepo.Delete(section.ID); err != nil {
		return fmt.Errorf("删除章节失败: %w", err)
	}
	if err := s.sectionRepo.CompactAfter(section.ProjectID, section.OrderIndex); err != nil {
		return fmt.Errorf("压缩章节序号失败: %w", err)
	}
	klog.V(6).Infof("章节删除: projectID=%d, sectionID=%d", section.ProjectID, sectionID)
	return nil
}

// ReorderSections 按给定的章节 ID 顺序整体重排
// ID 集合必须与项目现有章节完全一致
func (s *ManualService) ReorderSections(projectID, ownerID uint, orderedIDs []uint) error {
	if _, err := s.ownedManualProject(projectID, ownerID); err != nil {
		return err
	}
	sections, err := s.sectionRepo.GetByProject(projectID)
	if err != nil {
		return fmt.Errorf("读取章节失败: %w", err)
	}
	if len(orderedIDs) != len(sections) {
		return fmt.Errorf("章节数量不匹配: 期望 %d, 实际 %d", len(sections), len(orderedIDs))
	}
	existing := make(map[uint]bool, len(sections))
	for _, section := range sections {
		existing[section.ID] = true
	}
	for _, id := range orderedIDs {
		if !existing[id] {
			return fmt.Errorf("章节 %d 不属于项目 %d", id, projectID)
		}
	}
	for i, id := range orderedIDs {
		if err := s.sectionRepo.UpdateOrder(projectID, id, i); err != nil {
			return fmt.Errorf("更新章节顺序失败: %w", err)
		}
	}
	return nil
}
