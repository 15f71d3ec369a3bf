package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codewright/backend/internal/repository"
	"github.com/codewright/backend/internal/service"
)

// MappingHandler 后缀-语言映射表的管理接口
// 映射表是全局的，不做用户隔离，但仍要求携带身份
type MappingHandler struct {
	service *service.MappingService
}

func NewMappingHandler(service *service.MappingService) *MappingHandler {
	return &MappingHandler{service: service}
}

func (h *MappingHandler) List(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}
	mappings, err := h.service.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, mappings)
}

type createMappingRequest struct {
	Suffix   string `json:"suffix" binding:"required"`
	Language string `json:"language" binding:"required"`
}

func (h *MappingHandler) Create(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}
	var req createMappingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	mapping, err := h.service.Create(req.Suffix, req.Language)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, mapping)
}

type updateMappingRequest struct {
	Language string `json:"language" binding:"required"`
	Enabled  bool   `json:"enabled"`
}

func (h *MappingHandler) Update(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req updateMappingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	mapping, err := h.service.Update(id, req.Language, req.Enabled)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "映射不存在"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, mapping)
}

func (h *MappingHandler) Delete(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "映射不存在"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "映射已删除"})
}
