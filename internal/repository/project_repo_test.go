package repository

import (
	"testing"

	"github.com/codewright/backend/internal/model"
)

func TestProjectRepositoryGetOwned(t *testing.T) {
	db := newTestDB(t, &model.Project{})
	repo := NewProjectRepository(db)

	project := &model.Project{Name: "演示项目", Type: "code", OwnerID: 1}
	if err := repo.Create(project); err != nil {
		t.Fatalf("create project error: %v", err)
	}

	got, err := repo.GetOwned(project.ID, 1)
	if err != nil {
		t.Fatalf("GetOwned error: %v", err)
	}
	if got.Name != "演示项目" {
		t.Fatalf("unexpected project: %+v", got)
	}

	// 他人项目视同不存在
	if _, err := repo.GetOwned(project.ID, 2); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound for foreign owner, got %v", err)
	}
	if _, err := repo.GetOwned(999, 1); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound for missing project, got %v", err)
	}
}

func TestProjectRepositoryGetIncludedItems(t *testing.T) {
	db := newTestDB(t, &model.Project{}, &model.UploadedFile{}, &model.ProjectItem{})
	repo := NewProjectRepository(db)

	file := &model.UploadedFile{OriginalFilename: "main.go", StoragePath: "/tmp/main.go", FileSize: 10, UploaderID: 1}
	if err := db.Create(file).Error; err != nil {
		t.Fatalf("create file error: %v", err)
	}

	items := []model.ProjectItem{
		{ProjectID: 1, FileID: file.ID, OrderIndex: 3, IncludeInExport: true},
		{ProjectID: 1, FileID: file.ID, OrderIndex: 1, IncludeInExport: true},
		{ProjectID: 1, FileID: file.ID, OrderIndex: 2, IncludeInExport: false},
	}
	for i := range items {
		if err := db.Create(&items[i]).Error; err != nil {
			t.Fatalf("create item error: %v", err)
		}
	}

	got, err := repo.GetIncludedItems(1)
	if err != nil {
		t.Fatalf("GetIncludedItems error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 included items, got %d", len(got))
	}
	if got[0].OrderIndex != 1 || got[1].OrderIndex != 3 {
		t.Fatalf("unexpected order: %d %d", got[0].OrderIndex, got[1].OrderIndex)
	}
	if got[0].File == nil || got[0].File.OriginalFilename != "main.go" {
		t.Fatalf("expected preloaded file, got %+v", got[0].File)
	}
}
