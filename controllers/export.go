package controllers

import (
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"snap-report-api/config"
	"snap-report-api/models"
	"snap-report-api/services"
	"snap-report-api/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportController streams xlsx exports of the store.
type ExportController struct {
	store    store.Repository
	exporter *services.Exporter
	cfg      *config.Config
}

func NewExportController(repo store.Repository, exporter *services.Exporter, cfg *config.Config) *ExportController {
	return &ExportController{store: repo, exporter: exporter, cfg: cfg}
}

// Export handles GET /api/admin/export: the one-row-per-submission summary
// workbook. status/search query params narrow the exported set the same way
// the listing endpoint does.
func (ec *ExportController) Export(c *gin.Context) {
	submissions := ec.exportSet(c)

	f, err := ec.exporter.BuildSummary(submissions)
	if err != nil {
		ec.exportError(c, err)
		return
	}

	ec.send(c, f, fmt.Sprintf("随手拍数据_%s.xlsx", time.Now().Format("2006-01-02")))
}

// ExportDetailed handles GET /api/admin/export-detailed: summary plus
// per-file sheets and the statistics sheet.
func (ec *ExportController) ExportDetailed(c *gin.Context) {
	submissions := ec.exportSet(c)

	f, err := ec.exporter.BuildDetailed(submissions, ec.store.Stats())
	if err != nil {
		ec.exportError(c, err)
		return
	}

	ec.send(c, f, fmt.Sprintf("随手拍详细数据_%s.xlsx", time.Now().Format("2006-01-02")))
}

func (ec *ExportController) exportSet(c *gin.Context) []models.Submission {
	status := c.Query("status")
	search := c.Query("search")
	if status == "" && search == "" {
		return ec.store.List()
	}
	submissions, _ := ec.store.Query(status, search, 1, 1<<30)
	return submissions
}

// send writes the workbook to a uuid-named temp file in the export directory,
// streams it as an attachment and removes the temp file shortly after. The
// unique name keeps two concurrent exports from racing on the same file.
func (ec *ExportController) send(c *gin.Context, f *excelize.File, fileName string) {
	if err := os.MkdirAll(ec.cfg.ExportDir, os.ModePerm); err != nil {
		ec.exportError(c, err)
		return
	}

	tmpPath := filepath.Join(ec.cfg.ExportDir, uuid.New().String()+".xlsx")
	if err := f.SaveAs(tmpPath); err != nil {
		ec.exportError(c, err)
		return
	}
	log.Printf("Excel文件已生成: %s", tmpPath)

	c.Header("Content-Type", xlsxContentType)
	c.Header("Content-Disposition",
		fmt.Sprintf("attachment; filename*=UTF-8''%s", url.PathEscape(fileName)))
	c.File(tmpPath)

	time.AfterFunc(5*time.Second, func() {
		if err := os.Remove(tmpPath); err != nil && !os.IsNotExist(err) {
			log.Printf("删除临时文件失败: %s: %v", tmpPath, err)
		}
	})
}

func (ec *ExportController) exportError(c *gin.Context, err error) {
	log.Printf("导出Excel失败: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"message": "导出失败",
	})
}
