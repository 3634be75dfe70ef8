package controllers

import (
	"fmt"
	"log"
	"math/rand"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"snap-report-api/config"
	"snap-report-api/models"
	"snap-report-api/services"
	"snap-report-api/store"
	"snap-report-api/utils"

	"github.com/gin-gonic/gin"
)

const (
	maxFilesPerRequest = 10
	maxFileSize        = 50 << 20 // 50MB per file
)

// SubmissionController handles the public intake endpoint.
type SubmissionController struct {
	store    store.Repository
	cfg      *config.Config
	notifier *services.Notifier
}

func NewSubmissionController(repo store.Repository, cfg *config.Config, notifier *services.Notifier) *SubmissionController {
	return &SubmissionController{store: repo, cfg: cfg, notifier: notifier}
}

// incomingFile pairs a multipart file part with the media kind decided for it.
type incomingFile struct {
	field  string
	header *multipart.FileHeader
	kind   models.MediaKind
}

// Submit accepts one multipart report: text fields phone/name/description
// plus image and video parts. Files are written to disk first and rolled back
// in full when any later validation fails.
func (sc *SubmissionController) Submit(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "无效的表单数据",
		})
		return
	}

	files, errMsg := collectFiles(form)
	if errMsg != "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": errMsg,
		})
		return
	}

	// Files go to disk before field validation; every failure path below
	// this point must remove them again.
	var saved []string
	var images, videos []models.MediaFile
	for _, f := range files {
		targetDir := sc.cfg.ImagesDir()
		if f.kind == models.KindVideo {
			targetDir = sc.cfg.VideosDir()
		}

		filename := generateFilename(f.field, f.header.Filename)
		dst := filepath.Join(targetDir, filename)
		if err := c.SaveUploadedFile(f.header, dst); err != nil {
			log.Printf("保存文件失败: %s: %v", dst, err)
			removeFiles(saved)
			sc.serverError(c, err)
			return
		}
		saved = append(saved, dst)

		media := models.MediaFile{
			OriginalName: f.header.Filename,
			Filename:     filename,
			Path:         dst,
			Size:         f.header.Size,
			MimeType:     f.header.Header.Get("Content-Type"),
			UploadTime:   time.Now(),
		}
		if f.kind == models.KindImage {
			images = append(images, media)
		} else {
			videos = append(videos, media)
		}
	}

	phone := utils.SanitizeInput(c.PostForm("phone"))
	name := utils.SanitizeInput(c.PostForm("name"))
	description := utils.SanitizeInput(c.PostForm("description"))

	if phone == "" || name == "" || description == "" {
		removeFiles(saved)
		details := gin.H{"phone": nil, "name": nil, "description": nil}
		if phone == "" {
			details["phone"] = "手机号不能为空"
		}
		if name == "" {
			details["name"] = "姓名不能为空"
		}
		if description == "" {
			details["description"] = "文字说明不能为空"
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "请填写所有必填字段",
			"details": details,
		})
		return
	}

	if !utils.ValidatePhone(phone) {
		removeFiles(saved)
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "手机号格式不正确",
		})
		return
	}

	if len(images) == 0 {
		removeFiles(saved)
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "请至少上传一张图片",
		})
		return
	}

	if videos == nil {
		videos = []models.MediaFile{}
	}

	submission := models.Submission{
		Phone:       phone,
		Name:        name,
		Description: description,
		Images:      images,
		Videos:      videos,
		SubmitTime:  time.Now(),
		Status:      models.StatusPending,
	}

	if err := sc.store.Insert(&submission); err != nil {
		log.Printf("保存提交记录失败: %v", err)
		removeFiles(saved)
		sc.serverError(c, err)
		return
	}

	log.Printf("新提交保存成功，ID: %d (图片 %d, 视频 %d)",
		submission.ID, len(images), len(videos))

	if sc.notifier != nil {
		go sc.notifier.NotifyNewSubmission(submission)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "提交成功！",
		"data": gin.H{
			"id":          submission.ID,
			"submitTime":  submission.SubmitTime,
			"imagesCount": len(images),
			"videosCount": len(videos),
		},
	})
}

// collectFiles flattens the multipart file map in field order, enforces the
// per-request ceilings and classifies every part. Any part whose declared
// type is neither image/* nor video/* rejects the whole upload.
func collectFiles(form *multipart.Form) ([]incomingFile, string) {
	fields := make([]string, 0, len(form.File))
	for field := range form.File {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var files []incomingFile
	for _, field := range fields {
		for _, header := range form.File[field] {
			mimeType := header.Header.Get("Content-Type")
			if !strings.HasPrefix(mimeType, "image/") && !strings.HasPrefix(mimeType, "video/") {
				return nil, fmt.Sprintf("不支持的文件类型: %s", mimeType)
			}
			if header.Size > maxFileSize {
				return nil, "文件大小超出限制"
			}

			// Field-name prefix wins over the declared type; the type is the
			// fallback signal for unprefixed parts.
			var kind models.MediaKind
			switch {
			case strings.HasPrefix(field, "image_"):
				kind = models.KindImage
			case strings.HasPrefix(field, "video_"):
				kind = models.KindVideo
			case strings.HasPrefix(mimeType, "image/"):
				kind = models.KindImage
			default:
				kind = models.KindVideo
			}

			files = append(files, incomingFile{field: field, header: header, kind: kind})
		}
	}

	if len(files) > maxFilesPerRequest {
		return nil, "文件数量超出限制"
	}
	return files, ""
}

// generateFilename builds the collision-resistant stored name
// {field}-{unixMillis}-{random}{ext}, keeping only the original extension.
func generateFilename(field, originalName string) string {
	return fmt.Sprintf("%s-%d-%d%s",
		field, time.Now().UnixMilli(), rand.Intn(1_000_000_000),
		filepath.Ext(originalName))
}

func removeFiles(paths []string) {
	for _, path := range paths {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Printf("清理文件失败: %s: %v", path, err)
		} else {
			log.Printf("清理文件: %s", path)
		}
	}
}

// serverError replies with a generic 500; the underlying error is included
// only outside release mode.
func (sc *SubmissionController) serverError(c *gin.Context, err error) {
	body := gin.H{
		"success": false,
		"message": "服务器错误，请稍后重试",
	}
	if gin.Mode() != gin.ReleaseMode {
		body["error"] = err.Error()
	}
	c.JSON(http.StatusInternalServerError, body)
}
