package store

import (
	"errors"

	"snap-report-api/models"
)

// ErrNotFound is returned when no submission carries the requested id. It is
// a normal outcome; handlers translate it to a 404.
var ErrNotFound = errors.New("submission not found")

// ErrInvalidStatus is returned when a status update names something other
// than pending/approved/rejected.
var ErrInvalidStatus = errors.New("invalid status value")

// Repository is the submission store seen by the HTTP layer.
type Repository interface {
	// Insert assigns the next id to s, prepends it (newest first) and
	// persists. The assigned id is returned via s.ID.
	Insert(s *models.Submission) error

	FindByID(id int) (*models.Submission, error)

	// UpdateStatus sets submission status and update time, persists, and
	// returns the updated record.
	UpdateStatus(id int, status string) (*models.Submission, error)

	// Delete removes the record and every file it references from disk.
	// Individual file-deletion failures are logged, not fatal.
	Delete(id int) error

	// List returns all submissions, newest first.
	List() []models.Submission

	// Query filters by status ("all" disables the filter) and free-text
	// search, then paginates. page is 1-based.
	Query(status, search string, page, limit int) ([]models.Submission, models.Pagination)

	Stats() models.Stats

	// Save rewrites the snapshot file from current state.
	Save() error
}
