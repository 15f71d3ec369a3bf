package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codewright/backend/internal/repository"
	"github.com/codewright/backend/internal/service"
)

type ManualHandler struct {
	service *service.ManualService
}

func NewManualHandler(service *service.ManualService) *ManualHandler {
	return &ManualHandler{service: service}
}

type sectionRequest struct {
	Title        string `json:"title" binding:"required"`
	BodyMarkdown string `json:"body_markdown"`
}

func (h *ManualHandler) CreateSection(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req sectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	section, err := h.service.CreateSection(projectID, userID, req.Title, req.BodyMarkdown)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "项目不存在"})
		} else {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusCreated, section)
}

func (h *ManualHandler) ListSections(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}

	sections, err := h.service.ListSections(projectID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "项目不存在"})
		} else {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, sections)
}

func (h *ManualHandler) UpdateSection(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	sectionID, ok := pathID(c, "sectionId")
	if !ok {
		return
	}
	var req sectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	section, err := h.service.UpdateSection(sectionID, userID, req.Title, req.BodyMarkdown)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "章节不存在"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, section)
}

func (h *ManualHandler) DeleteSection(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	sectionID, ok := pathID(c, "sectionId")
	if !ok {
		return
	}

	if err := h.service.DeleteSection(sectionID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "章节不存在"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "章节已删除"})
}

type reorderRequest struct {
	SectionIDs []uint `json:"section_ids" binding:"required"`
}

func (h *ManualHandler) ReorderSections(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.ReorderSections(projectID, userID, req.SectionIDs); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "项目不存在"})
		} else {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "章节顺序已更新"})
}
