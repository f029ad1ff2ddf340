package csv

import (
	"context"
	"io"
	"os"

	"coursegraph/domain/core/entities"
	"coursegraph/domain/prereq"
	pkgerrors "coursegraph/pkg/errors"

	"go.uber.org/zap"
)

type courseRecord struct {
	Campus       string `mapstructure:"Campus"`
	Subject      string `mapstructure:"Subject_Code"`
	Number       string `mapstructure:"Course_Code"`
	Title        string `mapstructure:"Title"`
	Prerequisite string `mapstructure:"Prerequisite(s)"`
	Description  string `mapstructure:"Course Description"`
}

// CourseLoader reads the combined course dataset
type CourseLoader struct {
	path   string
	logger *zap.Logger
}

// NewCourseLoader creates a loader for the dataset at path
func NewCourseLoader(path string, logger *zap.Logger) *CourseLoader {
	return &CourseLoader{path: path, logger: logger}
}

// LoadCourses reads and parses every course row
func (l *CourseLoader) LoadCourses(ctx context.Context) ([]*entities.Course, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, pkgerrors.NewDataLoadError(l.path, err)
	}
	defer f.Close()

	courses, err := l.Read(ctx, f)
	if err != nil {
		return nil, pkgerrors.NewDataLoadError(l.path, err)
	}
	return courses, nil
}

// Read parses a dataset stream. Rows without a campus or course id are skipped.
func (l *CourseLoader) Read(ctx context.Context, r io.Reader) ([]*entities.Course, error) {
	records, err := readRecords[courseRecord](r)
	if err != nil {
		return nil, err
	}

	courses := make([]*entities.Course, 0, len(records))
	var skipped, partial int
	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		parsed := prereq.Parse(rec.Prerequisite)
		if parsed.Status == prereq.StatusPartial {
			partial++
		}

		course, err := entities.NewCourse(rec.Campus, rec.Subject, rec.Number, rec.Title, rec.Prerequisite, rec.Description, parsed.Expression)
		if err != nil {
			skipped++
			continue
		}
		courses = append(courses, course.WithParseStatus(parsed.Status))
	}

	l.logger.Info("Loaded course dataset",
		zap.String("path", l.path),
		zap.Int("courses", len(courses)),
		zap.Int("skipped_rows", skipped),
		zap.Int("partial_prerequisites", partial),
	)
	return courses, nil
}
