package services

import (
	"coursegraph/domain/core/entities"
	"coursegraph/domain/core/valueobjects"
)

type campusCode struct {
	campus valueobjects.Campus
	code   valueobjects.CourseID
}

// CanonicalMatcher resolves campus course ids to cross-campus equivalence clusters.
// Later table rows overwrite earlier ones that share a key.
type CanonicalMatcher struct {
	byCode     map[campusCode]entities.CanonicalID
	records    map[entities.CanonicalID]*entities.CanonicalCourse
	byRow      map[int]*entities.CanonicalCourse
	campusRows map[valueobjects.Campus][]int
}

// NewCanonicalMatcher indexes the canonical table
func NewCanonicalMatcher(table []*entities.CanonicalCourse) *CanonicalMatcher {
	m := &CanonicalMatcher{
		byCode:     make(map[campusCode]entities.CanonicalID),
		records:    make(map[entities.CanonicalID]*entities.CanonicalCourse, len(table)),
		byRow:      make(map[int]*entities.CanonicalCourse, len(table)),
		campusRows: make(map[valueobjects.Campus][]int),
	}

	for _, rec := range table {
		m.records[rec.ID] = rec
		m.byRow[rec.Row] = rec
		m.campusRows[rec.Campus] = append(m.campusRows[rec.Campus], rec.Row)
		for _, code := range rec.Codes {
			m.byCode[campusCode{campus: rec.Campus, code: code}] = rec.ID
		}
	}
	return m
}

// Match returns the cluster containing the course, if any
func (m *CanonicalMatcher) Match(campus valueobjects.Campus, id valueobjects.CourseID) (entities.CanonicalID, bool) {
	cid, ok := m.byCode[campusCode{campus: campus, code: id}]
	return cid, ok
}

// Record returns the table row of a cluster
func (m *CanonicalMatcher) Record(id entities.CanonicalID) (*entities.CanonicalCourse, bool) {
	rec, ok := m.records[id]
	return rec, ok
}

// Row returns the embedding row of a cluster
func (m *CanonicalMatcher) Row(id entities.CanonicalID) (int, bool) {
	rec, ok := m.records[id]
	if !ok {
		return 0, false
	}
	return rec.Row, true
}

// RecordAt returns the record stored at an embedding row
func (m *CanonicalMatcher) RecordAt(row int) (*entities.CanonicalCourse, bool) {
	rec, ok := m.byRow[row]
	return rec, ok
}

// CampusRows returns the embedding rows owned by campus, in table order
func (m *CanonicalMatcher) CampusRows(campus valueobjects.Campus) []int {
	return m.campusRows[campus]
}

// Len returns the number of distinct clusters
func (m *CanonicalMatcher) Len() int {
	return len(m.records)
}
