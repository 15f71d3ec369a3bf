package service

import (
	"fmt"

	"k8s.io/klog/v2"

	"github.com/codewright/backend/internal/model"
	"github.com/codewright/backend/internal/repository"
	"github.com/codewright/backend/internal/service/highlight"
)

// MappingService 后缀-语言映射表管理
// 表是进程级共享的，管理端随时可改；导出侧只通过 Snapshot 读
type MappingService struct {
	mappingRepo repository.MappingRepository
}

func NewMappingService(mappingRepo repository.MappingRepository) *MappingService {
	return &MappingService{mappingRepo: mappingRepo}
}

// Seed 表为空时写入默认映射，幂等
func (s *MappingService) Seed() error {
	count, err := s.mappingRepo.Count()
	if err != nil {
		return fmt.Errorf("统计映射表失败: %w", err)
	}
	if count > 0 {
		return nil
	}

	mappings := make([]model.LanguageMapping, 0, len(model.DefaultLanguageMappings))
	for _, m := range model.DefaultLanguageMappings {
		mappings = append(mappings, model.LanguageMapping{
			Suffix:   m.Suffix,
			Language: m.Language,
			Enabled:  true,
		})
	}
	if err := s.mappingRepo.CreateBatch(mappings); err != nil {
		return fmt.Errorf("写入默认映射失败: %w", err)
	}
	klog.V(6).Infof("初始化默认后缀映射: %d 条", len(mappings))
	return nil
}

// Snapshot 取当前启用映射的快照
// 一次导出只调一次，整个导出过程看到一致的映射
func (s *MappingService) Snapshot() (highlight.Snapshot, error) {
	if err := s.Seed(); err != nil {
		return nil, err
	}
	mappings, err := s.mappingRepo.ListEnabled()
	if err != nil {
		return nil, fmt.Errorf("读取映射表失败: %w", err)
	}
	return highlight.NewSnapshot(mappings), nil
}

func (s *MappingService) List() ([]model.LanguageMapping, error) {
	if err := s.Seed(); err != nil {
		return nil, err
	}
	return s.mappingRepo.List()
}

func (s *MappingService) Create(suffix, language string) (*model.LanguageMapping, error) {
	mapping := &model.LanguageMapping{
		Suffix:   suffix,
		Language: language,
		Enabled:  true,
	}
	if err := s.mappingRepo.Create(mapping); err != nil {
		return nil, fmt.Errorf("创建映射失败: %w", err)
	}
	return mapping, nil
}

func (s *MappingService) Update(id uint, language string, enabled bool) (*model.LanguageMapping, error) {
	mapping, err := s.mappingRepo.Get(id)
	if err != nil {
		return nil, err
	}
	if language != "" {
		mapping.Language = language
	}
	mapping.Enabled = enabled
	if err := s.mappingRepo.Save(mapping); err != nil {
		return nil, fmt.Errorf("更新映射失败: %w", err)
	}
	return mapping, nil
}

func (s *MappingService) Delete(id uint) error {
	if _, err := s.mappingRepo.Get(id); err != nil {
		return err
	}
	return s.mappingRepo.Delete(id)
}
