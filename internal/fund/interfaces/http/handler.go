package http

import (
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/wyfcoding/fundbarometer/internal/fund/application"
	"github.com/wyfcoding/fundbarometer/internal/fund/domain"
	"github.com/wyfcoding/fundbarometer/pkg/logger"
)

// HTTP 处理器
// 负责处理基金摄取与查询相关的 HTTP 请求
type FundHandler struct {
	app *application.FundService // 基金应用服务

	// 查询条数的默认值与上限
	defaultLimit int
	maxLimit     int
}

// 创建 HTTP 处理器实例
func NewFundHandler(app *application.FundService, defaultLimit, maxLimit int) *FundHandler {
	if defaultLimit <= 0 {
		defaultLimit = 20
	}
	if maxLimit <= 0 {
		maxLimit = 100
	}
	return &FundHandler{app: app, defaultLimit: defaultLimit, maxLimit: maxLimit}
}

// 注册路由
// 将处理器方法绑定到 Gin 路由引擎
func (h *FundHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/", h.UploadPage)

	api := router.Group("/api/v1/funds")
	{
		api.POST("/upload", h.Upload)
		api.GET("/search", h.Search)
		api.POST("/refresh", h.Refresh)
	}
}

// UploadPage 上传表单页面
func (h *FundHandler) UploadPage(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(uploadPageHTML))
}

// Upload 接收 xlsx 并执行摄取流水线
func (h *FundHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("excel_file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "excel_file is required"})
		return
	}

	// 落盘临时文件后交给 excelize，处理完即删
	tmp, err := os.CreateTemp("", "fund-upload-*"+filepath.Ext(file.Filename))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpPath)

	if err := c.SaveUploadedFile(file, tmpPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	result, err := h.app.IngestFile(c.Request.Context(), tmpPath)
	if err != nil {
		logger.Error(c.Request.Context(), "ingestion failed", "file", file.Filename, "error", err)
		status := http.StatusInternalServerError
		if err == application.ErrIngestInProgress {
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// Search 查询组合视图索引
func (h *FundHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q is required"})
		return
	}

	limit := h.defaultLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = min(n, h.maxLimit)
	}

	records, err := h.app.Search(c.Request.Context(), query, limit)
	if err != nil {
		logger.Error(c.Request.Context(), "search failed", "query", query, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if records == nil {
		records = []domain.CombinedRecord{}
	}

	c.JSON(http.StatusOK, gin.H{"query": query, "count": len(records), "results": records})
}

// Refresh 重建组合视图索引
func (h *FundHandler) Refresh(c *gin.Context) {
	if err := h.app.RefreshIndex(c.Request.Context()); err != nil {
		logger.Error(c.Request.Context(), "index refresh failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": h.app.IndexSize()})
}
