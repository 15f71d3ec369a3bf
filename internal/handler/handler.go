package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// currentUserID 从请求头取调用方身份
// 认证由外层网关完成，这里只消费它注入的 X-User-ID
func currentUserID(c *gin.Context) (uint, bool) {
	raw := c.GetHeader("X-User-ID")
	if raw == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "缺少用户标识"})
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "用户标识无效"})
		return 0, false
	}
	return uint(id), true
}

// pathID 解析路径里的数字主键
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(id), true
}

// pagination 解析 limit/offset 查询参数，非法值用默认
func pagination(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
