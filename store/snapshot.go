package store

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"snap-report-api/models"
)

// snapshot is the on-disk layout of the data file.
type snapshot struct {
	Submissions []models.Submission `json:"submissions"`
	NextID      int                 `json:"nextId"`
}

// SnapshotStore keeps every submission in memory, newest first, and rewrites
// a single JSON snapshot file on every mutation. That is only acceptable for
// small datasets; this store is deliberately not built for high write volume.
//
// The mutex serializes all access so each mutation runs to completion before
// the next request touches the slice or the file.
type SnapshotStore struct {
	mu          sync.Mutex
	path        string
	submissions []models.Submission
	nextID      int
}

// Open loads the snapshot at path, or starts empty when the file does not
// exist. A corrupt snapshot is logged and treated as empty rather than
// aborting startup.
func Open(path string) (*SnapshotStore, error) {
	s := &SnapshotStore{
		path:        path,
		submissions: []models.Submission{},
		nextID:      1,
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		log.Printf("数据文件不存在，使用空数据: %s", path)
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		log.Printf("加载历史数据失败: %v", err)
		return s, nil
	}

	if snap.Submissions != nil {
		s.submissions = snap.Submissions
	}
	if snap.NextID > 0 {
		s.nextID = snap.NextID
	}
	log.Printf("加载了 %d 条历史数据", len(s.submissions))
	return s, nil
}

// Insert assigns the next id and prepends the record. A failed submission
// never reaches Insert, so failed submissions do not consume ids; if the
// snapshot write fails the in-memory state is rolled back as well, keeping
// the invariant that no submission exists only in memory.
func (s *SnapshotStore) Insert(sub *models.Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub.ID = s.nextID
	s.nextID++
	s.submissions = append([]models.Submission{*sub}, s.submissions...)

	if err := s.saveLocked(); err != nil {
		s.submissions = s.submissions[1:]
		s.nextID--
		return err
	}
	return nil
}

func (s *SnapshotStore) FindByID(id int) (*models.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.submissions {
		if s.submissions[i].ID == id {
			sub := s.submissions[i]
			return &sub, nil
		}
	}
	return nil, ErrNotFound
}

func (s *SnapshotStore) UpdateStatus(id int, status string) (*models.Submission, error) {
	if !models.IsValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.submissions {
		if s.submissions[i].ID != id {
			continue
		}
		now := time.Now()
		s.submissions[i].Status = status
		s.submissions[i].UpdateTime = &now

		if err := s.saveLocked(); err != nil {
			return nil, err
		}
		sub := s.submissions[i]
		return &sub, nil
	}
	return nil, ErrNotFound
}

// Delete removes the record and its files. File cleanup runs first; a file
// that cannot be removed is logged and skipped, never failing the delete.
func (s *SnapshotStore) Delete(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := -1
	for i := range s.submissions {
		if s.submissions[i].ID == id {
			index = i
			break
		}
	}
	if index == -1 {
		return ErrNotFound
	}

	for _, file := range s.submissions[index].Files() {
		if err := os.Remove(file.Path); err != nil && !os.IsNotExist(err) {
			log.Printf("删除文件失败: %s: %v", file.Path, err)
		}
	}

	s.submissions = append(s.submissions[:index], s.submissions[index+1:]...)
	return s.saveLocked()
}

func (s *SnapshotStore) List() []models.Submission {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Submission, len(s.submissions))
	copy(out, s.submissions)
	return out
}

// Query filters first, paginates second. status "all" (or empty) means no
// status filter. The search term matches name and description
// case-insensitively and phone as a plain substring.
func (s *SnapshotStore) Query(status, search string, page, limit int) ([]models.Submission, models.Pagination) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	filtered := make([]models.Submission, 0, len(s.submissions))
	searchLower := strings.ToLower(search)
	for _, sub := range s.submissions {
		if status != "" && status != "all" && sub.Status != status {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(sub.Name), searchLower) &&
			!strings.Contains(sub.Phone, search) &&
			!strings.Contains(strings.ToLower(sub.Description), searchLower) {
			continue
		}
		filtered = append(filtered, sub)
	}

	total := len(filtered)
	pages := (total + limit - 1) / limit

	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return filtered[start:end], models.Pagination{
		Current: page,
		Limit:   limit,
		Total:   total,
		Pages:   pages,
	}
}

func (s *SnapshotStore) Stats() models.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := models.Stats{Total: len(s.submissions)}
	for _, sub := range s.submissions {
		switch sub.Status {
		case models.StatusPending:
			stats.Pending++
		case models.StatusApproved:
			stats.Approved++
		case models.StatusRejected:
			stats.Rejected++
		}
		stats.TotalImages += len(sub.Images)
		stats.TotalVideos += len(sub.Videos)
	}
	return stats
}

// Save rewrites the snapshot file. Used for the final flush on shutdown;
// mutations persist themselves.
func (s *SnapshotStore) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked()
}

func (s *SnapshotStore) saveLocked() error {
	snap := snapshot{
		Submissions: s.submissions,
		NextID:      s.nextID,
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return fmt.Errorf("create snapshot directory: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// LogOrphans walks the upload directories and logs every file no submission
// references. A crash between writing files and writing the snapshot leaves
// such orphans behind; they are reported for manual cleanup, never removed.
func (s *SnapshotStore) LogOrphans(dirs ...string) {
	s.mu.Lock()
	referenced := make(map[string]bool)
	for _, sub := range s.submissions {
		for _, file := range sub.Files() {
			referenced[filepath.Clean(file.Path)] = true
		}
	}
	s.mu.Unlock()

	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			path := filepath.Clean(filepath.Join(dir, entry.Name()))
			if !referenced[path] {
				log.Printf("发现孤立文件（无记录引用）: %s", path)
			}
		}
	}
}
