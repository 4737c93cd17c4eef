package service

import (
	"strings"

	"github.com/vibast-solutions/ms-go-directory/app/entity"
)

const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

type WorkshopQuery struct {
	Search  string
	City    string
	ZipCode string
	Concept string
	Limit   int
	Offset  int
}

type ManagementChangeQuery struct {
	Search   string
	DateFrom string
	DateTo   string
	Limit    int
	Offset   int
}

type DatasetStore interface {
	Workshops() []entity.Workshop
	ManagementChanges() []entity.ManagementChange
}

// DirectoryService answers listing queries over the in-memory datasets.
// Filtering and pagination are pure: the same store and query always produce
// the same (total, page) pair.
type DirectoryService interface {
	Workshops(q WorkshopQuery) (int, []entity.Workshop)
	ManagementChanges(q ManagementChangeQuery) (int, []entity.ManagementChange)
}

type directoryService struct {
	store DatasetStore
}

func NewDirectoryService(store DatasetStore) DirectoryService {
	return &directoryService{store: store}
}

func (s *directoryService) Workshops(q WorkshopQuery) (int, []entity.Workshop) {
	filtered := make([]entity.Workshop, 0)
	for _, w := range s.store.Workshops() {
		if matchesWorkshop(&w, q) {
			filtered = append(filtered, w)
		}
	}
	total := len(filtered)
	return total, paginate(filtered, ClampLimit(q.Limit), ClampOffset(q.Offset))
}

func (s *directoryService) ManagementChanges(q ManagementChangeQuery) (int, []entity.ManagementChange) {
	filtered := make([]entity.ManagementChange, 0)
	for _, c := range s.store.ManagementChanges() {
		if matchesManagementChange(&c, q) {
			filtered = append(filtered, c)
		}
	}
	total := len(filtered)
	return total, paginate(filtered, ClampLimit(q.Limit), ClampOffset(q.Offset))
}

func matchesWorkshop(w *entity.Workshop, q WorkshopQuery) bool {
	if q.Search != "" && !containsFold(q.Search, w.Name, w.City, w.ZipCode) {
		return false
	}
	if q.City != "" && w.City != q.City {
		return false
	}
	if q.ZipCode != "" && w.ZipCode != q.ZipCode {
		return false
	}
	if q.Concept != "" && !hasConcept(w, q.Concept) {
		return false
	}
	return true
}

func matchesManagementChange(c *entity.ManagementChange, q ManagementChangeQuery) bool {
	if q.Search != "" && !containsFold(q.Search, c.CompanyName, c.City, c.NewManager) {
		return false
	}
	// Dates are ISO YYYY-MM-DD strings; lexicographic order matches
	// calendar order for that shape, so no parsing is needed.
	if q.DateFrom != "" && c.ChangeDate < q.DateFrom {
		return false
	}
	if q.DateTo != "" && c.ChangeDate > q.DateTo {
		return false
	}
	return true
}

func hasConcept(w *entity.Workshop, concept string) bool {
	for _, c := range w.Concepts() {
		if c == concept {
			return true
		}
	}
	return false
}

// containsFold reports whether any of the fields contains needle,
// case-insensitively.
func containsFold(needle string, fields ...string) bool {
	needle = strings.ToLower(needle)
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// ClampLimit maps out-of-range page sizes to the default or maximum.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

func ClampOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}

func paginate[T any](records []T, limit, offset int) []T {
	if offset >= len(records) {
		return []T{}
	}
	end := offset + limit
	if end > len(records) {
		end = len(records)
	}
	return records[offset:end]
}
