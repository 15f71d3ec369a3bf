package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/codewright/backend/internal/model"
	"github.com/codewright/backend/internal/repository"
	"github.com/codewright/backend/internal/service"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("打开测试数据库失败: %v", err)
	}
	if err := db.AutoMigrate(
		&model.Project{}, &model.UploadedFile{}, &model.ProjectItem{},
		&model.ManualSection{}, &model.LanguageMapping{}, &model.ExportJob{},
	); err != nil {
		t.Fatalf("迁移测试数据库失败: %v", err)
	}

	projectRepo := repository.NewProjectRepository(db)
	sectionRepo := repository.NewSectionRepository(db)

	projectHandler := NewProjectHandler(service.NewProjectService(projectRepo))
	manualHandler := NewManualHandler(service.NewManualService(projectRepo, sectionRepo))
	mappingHandler := NewMappingHandler(service.NewMappingService(repository.NewMappingRepository(db)))

	r := gin.New()
	api := r.Group("/api")
	projects := api.Group("/projects")
	projects.POST("", projectHandler.Create)
	projects.GET("", projectHandler.List)
	projects.GET("/:id", projectHandler.Get)
	projects.DELETE("/:id", projectHandler.Delete)
	projects.POST("/:id/sections", manualHandler.CreateSection)
	projects.GET("/:id/sections", manualHandler.ListSections)
	mappings := api.Group("/mappings")
	mappings.GET("", mappingHandler.List)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, userID string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("编码请求体失败: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestProjectLifecycle(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/projects", "1",
		gin.H{"name": "演示项目", "type": "code"})
	if w.Code != http.StatusCreated {
		t.Fatalf("创建项目期望 201，实际 %d: %s", w.Code, w.Body.String())
	}
	var project model.Project
	if err := json.Unmarshal(w.Body.Bytes(), &project); err != nil {
		t.Fatalf("解析响应失败: %v", err)
	}

	w = doJSON(t, r, http.MethodGet, "/api/projects", "1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("列表期望 200，实际 %d", w.Code)
	}

	// 他人看不到
	w = doJSON(t, r, http.MethodGet, "/api/projects/1", "2", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("他人查询期望 404，实际 %d", w.Code)
	}

	w = doJSON(t, r, http.MethodDelete, "/api/projects/1", "1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("删除期望 200，实际 %d: %s", w.Code, w.Body.String())
	}
}

func TestProjectCreateRejectsBadType(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/projects", "1",
		gin.H{"name": "演示", "type": "spreadsheet"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("非法类型期望 400，实际 %d", w.Code)
	}
}

func TestMissingUserIDRejected(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/projects", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("缺少用户标识期望 401，实际 %d", w.Code)
	}
}

func TestSectionEndpoints(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/projects", "1",
		gin.H{"name": "手册", "type": "manual"})
	if w.Code != http.StatusCreated {
		t.Fatalf("创建项目失败: %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/api/projects/1/sections", "1",
		gin.H{"title": "安装", "body_markdown": "# 安装"})
	if w.Code != http.StatusCreated {
		t.Fatalf("创建章节期望 201，实际 %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, "/api/projects/1/sections", "1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("章节列表期望 200，实际 %d", w.Code)
	}
	var sections []model.ManualSection
	if err := json.Unmarshal(w.Body.Bytes(), &sections); err != nil {
		t.Fatalf("解析响应失败: %v", err)
	}
	if len(sections) != 1 || sections[0].Title != "安装" {
		t.Fatalf("章节列表不对: %+v", sections)
	}
}

func TestMappingListSeedsDefaults(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/mappings", "1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("映射列表期望 200，实际 %d", w.Code)
	}
	var mappings []model.LanguageMapping
	if err := json.Unmarshal(w.Body.Bytes(), &mappings); err != nil {
		t.Fatalf("解析响应失败: %v", err)
	}
	if len(mappings) != len(model.DefaultLanguageMappings) {
		t.Fatalf("期望 %d 条默认映射，实际 %d", len(model.DefaultLanguageMappings), len(mappings))
	}
}
