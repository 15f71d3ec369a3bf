package repository

import (
	"testing"

	"github.com/codewright/backend/internal/model"
)

func TestSectionRepositoryOrdering(t *testing.T) {
	db := newTestDB(t, &model.ManualSection{})
	repo := NewSectionRepository(db)

	for _, idx := range []int{2, 1, 3} {
		section := &model.ManualSection{
			ProjectID:    1,
			Title:        "章节",
			BodyMarkdown: "内容",
			OrderIndex:   idx,
		}
		if err := repo.Create(section); err != nil {
			t.Fatalf("create section error: %v", err)
		}
	}

	sections, err := repo.GetByProject(1)
	if err != nil {
		t.Fatalf("GetByProject error: %v", err)
	}
	if len(sections) != 3 {
		t.Fatalf("expected 3 sections, got %d", len(sections))
	}
	for i, s := range sections {
		if s.OrderIndex != i+1 {
			t.Fatalf("unexpected order at %d: %d", i, s.OrderIndex)
		}
	}
}

func TestSectionRepositoryCompactAfter(t *testing.T) {
	db := newTestDB(t, &model.ManualSection{})
	repo := NewSectionRepository(db)

	for idx := 1; idx <= 4; idx++ {
		section := &model.ManualSection{ProjectID: 1, Title: "章节", BodyMarkdown: "x", OrderIndex: idx}
		if err := repo.Create(section); err != nil {
			t.Fatalf("create section error: %v", err)
		}
	}

	// 删除第2个章节后压缩序号
	var victim model.ManualSection
	if err := db.Where("project_id = ? AND order_index = ?", 1, 2).First(&victim).Error; err != nil {
		t.Fatalf("load victim error: %v", err)
	}
	if err := repo.Delete(victim.ID); err != nil {
		t.Fatalf("delete error: %v", err)
	}
	if err := repo.CompactAfter(1, 2); err != nil {
		t.Fatalf("CompactAfter error: %v", err)
	}

	sections, err := repo.GetByProject(1)
	if err != nil {
		t.Fatalf("GetByProject error: %v", err)
	}
	if len(sections) != 3 {
		t.Fatalf("expected 3 sections, got %d", len(sections))
	}
	for i, s := range sections {
		if s.OrderIndex != i+1 {
			t.Fatalf("expected compacted order, got %d at %d", s.OrderIndex, i)
		}
	}
}
