package controllers_test

import (
	"bytes"
	"net/http"
	"strings"
	"testing"
	"time"

	"snap-report-api/controllers"

	"github.com/xuri/excelize/v2"
)

func TestExportEndpoint(t *testing.T) {
	router, _, _ := newTestServer(t)
	seedSubmissions(t, router, 2)

	rec := doJSON(router, http.MethodGet, "/api/admin/export", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	if ct := rec.Header().Get("Content-Type"); ct != controllers.XlsxContentType {
		t.Errorf("Content-Type = %q", ct)
	}
	disposition := rec.Header().Get("Content-Disposition")
	if !strings.Contains(disposition, "attachment") ||
		!strings.Contains(disposition, time.Now().Format("2006-01-02")) {
		t.Errorf("Content-Disposition = %q", disposition)
	}

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("response is not a valid workbook: %v", err)
	}
	rows, err := f.GetRows("随手拍数据")
	if err != nil {
		t.Fatalf("summary sheet missing: %v", err)
	}
	if len(rows) != 3 { // header + 2 submissions
		t.Errorf("summary sheet has %d rows, want 3", len(rows))
	}
}

func TestExportDetailedEndpoint(t *testing.T) {
	router, _, _ := newTestServer(t)
	seedSubmissions(t, router, 1)

	rec := doJSON(router, http.MethodGet, "/api/admin/export-detailed", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("response is not a valid workbook: %v", err)
	}
	for _, sheet := range []string{"基本信息", "图片文件", "统计信息"} {
		if idx, _ := f.GetSheetIndex(sheet); idx < 0 {
			t.Errorf("sheet %q missing", sheet)
		}
	}
	// No videos were uploaded, so the video sheet is omitted.
	if idx, _ := f.GetSheetIndex("视频文件"); idx >= 0 {
		t.Error("video sheet present despite zero videos")
	}
}

func TestExportFilteredByStatus(t *testing.T) {
	router, _, _ := newTestServer(t)
	seedSubmissions(t, router, 3)

	rec := doJSON(router, http.MethodPut, "/api/admin/submissions/1/status", `{"status":"approved"}`)
	if rec.Code != http.StatusOK {
		t.Fatal("seed status update failed")
	}

	rec = doJSON(router, http.MethodGet, "/api/admin/export?status=approved", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	rows, err := f.GetRows("随手拍数据")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 { // header + 1 approved submission
		t.Errorf("filtered export has %d rows, want 2", len(rows))
	}
}
