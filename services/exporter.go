package services

import (
	"fmt"
	"time"

	"snap-report-api/models"
	"snap-report-api/utils"

	"github.com/xuri/excelize/v2"
)

const summarySheet = "随手拍数据"

// Exporter renders submissions into xlsx workbooks.
type Exporter struct{}

func NewExporter() *Exporter {
	return &Exporter{}
}

// BuildSummary produces the single-sheet export: one row per submission.
func (e *Exporter) BuildSummary(submissions []models.Submission) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}

	header := []interface{}{
		"序号", "提交ID", "姓名", "手机号", "文字说明", "图片数量", "视频数量",
		"图片文件名", "视频文件名", "提交时间", "审核状态", "更新时间",
	}
	if err := f.SetSheetRow(summarySheet, "A1", &header); err != nil {
		return nil, err
	}

	for i, sub := range submissions {
		row := []interface{}{
			i + 1,
			sub.ID,
			sub.Name,
			sub.Phone,
			sub.Description,
			len(sub.Images),
			len(sub.Videos),
			joinOriginalNames(sub.Images),
			joinOriginalNames(sub.Videos),
			utils.FormatChineseTime(sub.SubmitTime),
			models.StatusLabel(sub.Status),
			utils.FormatChineseTimePtr(sub.UpdateTime),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return nil, err
		}
	}

	if err := setColumnWidths(f, summarySheet,
		6, 10, 12, 15, 30, 10, 10, 40, 40, 20, 10, 20); err != nil {
		return nil, err
	}
	return f, nil
}

// BuildDetailed produces the four-sheet export: submission summary, one row
// per image, one row per video, and the aggregate statistics. The media
// sheets are omitted when there are no files of that kind.
func (e *Exporter) BuildDetailed(submissions []models.Submission, stats models.Stats) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", "基本信息"); err != nil {
		return nil, err
	}

	basicHeader := []interface{}{
		"序号", "提交ID", "姓名", "手机号", "文字说明", "提交时间", "审核状态",
		"更新时间", "图片数量", "视频数量",
	}
	if err := f.SetSheetRow("基本信息", "A1", &basicHeader); err != nil {
		return nil, err
	}
	for i, sub := range submissions {
		row := []interface{}{
			i + 1,
			sub.ID,
			sub.Name,
			sub.Phone,
			sub.Description,
			utils.FormatChineseTime(sub.SubmitTime),
			models.StatusLabel(sub.Status),
			utils.FormatChineseTimePtr(sub.UpdateTime),
			len(sub.Images),
			len(sub.Videos),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow("基本信息", cell, &row); err != nil {
			return nil, err
		}
	}
	if err := setColumnWidths(f, "基本信息",
		6, 10, 12, 15, 40, 20, 10, 20, 10, 10); err != nil {
		return nil, err
	}

	if err := e.addMediaSheet(f, "图片文件", "图片序号", submissions, func(s models.Submission) []models.MediaFile {
		return s.Images
	}); err != nil {
		return nil, err
	}
	if err := e.addMediaSheet(f, "视频文件", "视频序号", submissions, func(s models.Submission) []models.MediaFile {
		return s.Videos
	}); err != nil {
		return nil, err
	}

	if err := e.addStatsSheet(f, stats); err != nil {
		return nil, err
	}
	return f, nil
}

func (e *Exporter) addMediaSheet(f *excelize.File, sheet, indexHeader string,
	submissions []models.Submission, pick func(models.Submission) []models.MediaFile) error {

	type mediaRow struct {
		submission models.Submission
		index      int
		file       models.MediaFile
	}
	var rows []mediaRow
	for _, sub := range submissions {
		for i, file := range pick(sub) {
			rows = append(rows, mediaRow{submission: sub, index: i + 1, file: file})
		}
	}
	if len(rows) == 0 {
		return nil
	}

	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	header := []interface{}{
		"提交ID", "用户姓名", indexHeader, "原始文件名", "存储文件名",
		"文件大小(MB)", "文件类型", "上传时间", "文件路径",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for i, r := range rows {
		row := []interface{}{
			r.submission.ID,
			r.submission.Name,
			r.index,
			r.file.OriginalName,
			r.file.Filename,
			fmt.Sprintf("%.2f", float64(r.file.Size)/1024/1024),
			r.file.MimeType,
			utils.FormatChineseTime(r.file.UploadTime),
			r.file.Path,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	return setColumnWidths(f, sheet, 10, 12, 8, 25, 25, 12, 15, 20, 30)
}

func (e *Exporter) addStatsSheet(f *excelize.File, stats models.Stats) error {
	const sheet = "统计信息"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	rows := [][]interface{}{
		{"统计项目", "数值"},
		{"总提交数", stats.Total},
		{"待审核", stats.Pending},
		{"已通过", stats.Approved},
		{"已拒绝", stats.Rejected},
		{"图片总数", stats.TotalImages},
		{"视频总数", stats.TotalVideos},
		{"导出时间", utils.FormatChineseTime(time.Now())},
	}
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return err
		}
	}

	return setColumnWidths(f, sheet, 15, 15)
}

func joinOriginalNames(files []models.MediaFile) string {
	names := ""
	for i, file := range files {
		if i > 0 {
			names += ", "
		}
		names += file.OriginalName
	}
	return names
}

func setColumnWidths(f *excelize.File, sheet string, widths ...float64) error {
	for i, width := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			return err
		}
	}
	return nil
}
