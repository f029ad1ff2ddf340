// Package memory holds the in-process, read-only course tables.
package memory

import (
	"sort"

	"coursegraph/domain/core/entities"
	"coursegraph/domain/core/valueobjects"

	"github.com/samber/lo"
)

type courseKey struct {
	campus valueobjects.Campus
	id     valueobjects.CourseID
}

// Catalog is an immutable in-memory CourseCatalog
type Catalog struct {
	byKey    map[courseKey]*entities.Course
	byCampus map[valueobjects.Campus][]*entities.Course
	subjects map[string]struct{}
	size     int
}

// NewCatalog indexes courses. The first row of a duplicated (campus, id) wins lookups;
// every row still contributes to its campus graph.
func NewCatalog(courses []*entities.Course) *Catalog {
	c := &Catalog{
		byKey:    make(map[courseKey]*entities.Course, len(courses)),
		byCampus: make(map[valueobjects.Campus][]*entities.Course),
		subjects: make(map[string]struct{}),
		size:     len(courses),
	}

	for _, course := range courses {
		key := courseKey{campus: course.Campus(), id: course.ID()}
		if _, exists := c.byKey[key]; !exists {
			c.byKey[key] = course
		}
		c.byCampus[course.Campus()] = append(c.byCampus[course.Campus()], course)

		if subject := valueobjects.NormalizeCourseID(course.Subject()); !subject.IsZero() {
			c.subjects[subject.String()] = struct{}{}
		}
	}
	return c
}

// Lookup returns the first loaded row for the course
func (c *Catalog) Lookup(campus valueobjects.Campus, id valueobjects.CourseID) (*entities.Course, bool) {
	course, ok := c.byKey[courseKey{campus: campus, id: id}]
	return course, ok
}

// CampusCourses returns every row of a campus in load order
func (c *Catalog) CampusCourses(campus valueobjects.Campus) []*entities.Course {
	return c.byCampus[campus]
}

// Campuses returns the campuses present in the dataset, sorted
func (c *Catalog) Campuses() []valueobjects.Campus {
	campuses := lo.Keys(c.byCampus)
	sort.Slice(campuses, func(i, j int) bool { return campuses[i] < campuses[j] })
	return campuses
}

// KnownSubjects returns the normalized subject codes of the whole dataset
func (c *Catalog) KnownSubjects() map[string]struct{} {
	return c.subjects
}

// Len returns the number of loaded rows
func (c *Catalog) Len() int {
	return c.size
}
