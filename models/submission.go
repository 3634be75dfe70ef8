package models

import "time"

// Submission statuses. The raw codes are what the snapshot file and the
// admin API exchange; the Chinese labels are display-only (exports, admin UI).
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

var statusLabels = map[string]string{
	StatusPending:  "待审核",
	StatusApproved: "已通过",
	StatusRejected: "已拒绝",
}

// IsValidStatus reports whether s is one of the three known status codes.
func IsValidStatus(s string) bool {
	_, ok := statusLabels[s]
	return ok
}

// StatusLabel returns the Chinese display label for a status code.
// Unknown codes are returned unchanged.
func StatusLabel(s string) string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return s
}

// MediaKind tags an uploaded file as image or video. The kind is decided once
// during intake and carried on the record; it is never re-derived from the
// MIME type afterwards.
type MediaKind string

const (
	KindImage MediaKind = "image"
	KindVideo MediaKind = "video"
)

// MediaFile describes one uploaded image or video.
//
// OriginalName is the client-supplied filename and is display-only; Filename
// is the server-generated name the file is stored under, and Path is where it
// lives relative to the working directory.
type MediaFile struct {
	OriginalName string    `json:"originalName"`
	Filename     string    `json:"filename"`
	Path         string    `json:"path"`
	Size         int64     `json:"size"`
	MimeType     string    `json:"mimetype"`
	UploadTime   time.Time `json:"uploadTime"`
}

// Submission is one citizen report: contact info, a free-text description and
// the attached media. Every submission carries at least one image.
type Submission struct {
	ID          int         `json:"id"`
	Phone       string      `json:"phone"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Images      []MediaFile `json:"images"`
	Videos      []MediaFile `json:"videos"`
	SubmitTime  time.Time   `json:"submitTime"`
	Status      string      `json:"status"`
	UpdateTime  *time.Time  `json:"updateTime,omitempty"`
}

// Files returns every media file of the submission, images first.
func (s *Submission) Files() []MediaFile {
	files := make([]MediaFile, 0, len(s.Images)+len(s.Videos))
	files = append(files, s.Images...)
	files = append(files, s.Videos...)
	return files
}

// Stats is the aggregate view over the whole store.
type Stats struct {
	Total       int `json:"total"`
	Pending     int `json:"pending"`
	Approved    int `json:"approved"`
	Rejected    int `json:"rejected"`
	TotalImages int `json:"totalImages"`
	TotalVideos int `json:"totalVideos"`
}

// Pagination describes one page of a filtered listing.
type Pagination struct {
	Current int `json:"current"`
	Limit   int `json:"limit"`
	Total   int `json:"total"`
	Pages   int `json:"pages"`
}
