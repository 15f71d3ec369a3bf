package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codewright/backend/internal/repository"
	"github.com/codewright/backend/internal/service"
	"github.com/codewright/backend/internal/service/assembler"
)

type ExportHandler struct {
	service *service.ExportService
}

func NewExportHandler(service *service.ExportService) *ExportHandler {
	return &ExportHandler{service: service}
}

type startExportRequest struct {
	ExportType     string `json:"export_type" binding:"required"`
	IncludeTOC     *bool  `json:"include_toc"`
	IncludeSummary *bool  `json:"include_summary"`
	Watermark      bool   `json:"watermark"`
	PageFormat     string `json:"page_format"`
}

// options 把请求体折算成导出选项，缺省项用默认值
func (r *startExportRequest) options() assembler.Options {
	opts := assembler.DefaultOptions()
	if r.IncludeTOC != nil {
		opts.IncludeTOC = *r.IncludeTOC
	}
	if r.IncludeSummary != nil {
		opts.IncludeSummary = *r.IncludeSummary
	}
	opts.Watermark = r.Watermark
	if r.PageFormat != "" {
		opts.PageFormat = r.PageFormat
	}
	return opts
}

// Start 发起导出，同步执行完后返回终态任务
func (h *ExportHandler) Start(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req startExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.ExportType != "pdf" && req.ExportType != "html" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "导出类型必须是 pdf 或 html"})
		return
	}

	job, err := h.service.StartExport(c.Request.Context(), projectID, userID, req.ExportType, req.options())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "项目不存在"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusCreated, job)
}

func (h *ExportHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	job, err := h.service.GetJob(c.Param("jobId"), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "任务不存在"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, job)
}

// Download 下发产物文件，只有 completed 任务有产物
func (h *ExportHandler) Download(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	job, err := h.service.GetJob(c.Param("jobId"), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "任务不存在"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	if job.FilePath == "" {
		c.JSON(http.StatusConflict, gin.H{"error": "任务没有可下载的产物"})
		return
	}
	c.FileAttachment(job.FilePath, job.FileName)
}

func (h *ExportHandler) ListByProject(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}
	limit, offset := pagination(c)

	jobs, err := h.service.ListByProject(projectID, userID, limit, offset)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "项目不存在"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, jobs)
}

func (h *ExportHandler) ListByUser(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	limit, offset := pagination(c)

	jobs, err := h.service.ListByUser(userID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, jobs)
}

func (h *ExportHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteJob(c.Param("jobId"), userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "任务不存在"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "任务已删除"})
}

func (h *ExportHandler) Statistics(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	stats, err := h.service.Statistics(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}
