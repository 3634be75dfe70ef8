package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"snap-report-api/store"

	"github.com/gin-gonic/gin"
)

// AdminController serves the review endpoints: listing with filters and
// pagination, detail lookup, status review, delete and aggregate stats.
type AdminController struct {
	store store.Repository
}

func NewAdminController(repo store.Repository) *AdminController {
	return &AdminController{store: repo}
}

// ListSubmissions handles GET /api/admin/submissions.
func (ac *AdminController) ListSubmissions(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	status := c.Query("status")
	search := c.Query("search")

	submissions, pagination := ac.store.Query(status, search, page, limit)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"submissions": submissions,
			"pagination":  pagination,
		},
	})
}

// GetSubmission handles GET /api/admin/submissions/:id.
func (ac *AdminController) GetSubmission(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		ac.notFound(c)
		return
	}

	submission, err := ac.store.FindByID(id)
	if err != nil {
		ac.notFound(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    submission,
	})
}

// UpdateStatus handles PUT /api/admin/submissions/:id/status.
func (ac *AdminController) UpdateStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		ac.notFound(c)
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "无效的状态值",
		})
		return
	}

	submission, err := ac.store.UpdateStatus(id, req.Status)
	switch {
	case errors.Is(err, store.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "无效的状态值",
		})
		return
	case errors.Is(err, store.ErrNotFound):
		ac.notFound(c)
		return
	case err != nil:
		log.Printf("更新状态失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "服务器错误",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "状态更新成功",
		"data":    submission,
	})
}

// DeleteSubmission handles DELETE /api/admin/submissions/:id. Associated
// files are removed from disk before the record goes away.
func (ac *AdminController) DeleteSubmission(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		ac.notFound(c)
		return
	}

	err = ac.store.Delete(id)
	switch {
	case errors.Is(err, store.ErrNotFound):
		ac.notFound(c)
		return
	case err != nil:
		log.Printf("删除提交记录失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "服务器错误",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "删除成功",
	})
}

// GetStats handles GET /api/admin/stats.
func (ac *AdminController) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    ac.store.Stats(),
	})
}

func (ac *AdminController) notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{
		"success": false,
		"message": "未找到该提交记录",
	})
}
