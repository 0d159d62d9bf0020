package service

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"github.com/noah-isme/gradekeeper/internal/models"
	appErrors "github.com/noah-isme/gradekeeper/pkg/errors"
	"github.com/noah-isme/gradekeeper/pkg/export"
)

// ReportService builds export datasets from read-only accessors on the
// registry and course rosters. It never mutates gradebook state.
type ReportService struct {
	gradebook *GradebookService
	csv       *export.CSVExporter
	pdf       *export.PDFExporter
	logger    *zap.Logger
}

// NewReportService constructs ReportService.
func NewReportService(gradebook *GradebookService, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		gradebook: gradebook,
		csv:       export.NewCSVExporter(),
		pdf:       export.NewPDFExporter(),
		logger:    logger,
	}
}

// StudentTranscript lists every stored assignment for a student, one
// row per assignment, ordered by course then assignment name.
func (s *ReportService) StudentTranscript(ctx context.Context, studentID string) (export.Dataset, error) {
	student, err := s.gradebook.Student(ctx, studentID)
	if err != nil {
		return export.Dataset{}, err
	}
	weights := s.gradebook.Weights()
	data := export.Dataset{
		Headers: []string{"Course", "Assignment", "Type", "Week", "Earned", "Max", "Percent"},
	}
	for _, code := range student.Courses() {
		for _, row := range studentCourseRows(student, code, weights) {
			data.AddRow(row)
		}
	}
	return data, nil
}

// CourseSummary lists per-student averages for a roster, with a
// trailing distribution row when the roster is non-empty.
func (s *ReportService) CourseSummary(ctx context.Context, course *models.Course) (export.Dataset, error) {
	if course == nil {
		return export.Dataset{}, appErrors.Clone(appErrors.ErrValidation, "course required")
	}
	weights := s.gradebook.Weights()
	data := export.Dataset{
		Headers: []string{"Student ID", "Student", "Average"},
	}
	for _, student := range course.Students() {
		data.AddRow(map[string]string{
			"Student ID": student.ID,
			"Student":    student.Name,
			"Average":    formatScore(student.CourseAverage(course.Code, weights)),
		})
	}
	if dist := course.Distribution(weights); dist != nil {
		data.AddRow(map[string]string{
			"Student ID": "-",
			"Student":    "class (min/median/max)",
			"Average": formatScore(dist.Min) + " / " +
				formatScore(dist.Median) + " / " + formatScore(dist.Max),
		})
	}
	return data, nil
}

// RenderCSV encodes a dataset as CSV bytes.
func (s *ReportService) RenderCSV(data export.Dataset) ([]byte, error) {
	out, err := s.csv.Render(data)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
	}
	return out, nil
}

// RenderPDF encodes a dataset as a titled PDF.
func (s *ReportService) RenderPDF(data export.Dataset, title string) ([]byte, error) {
	out, err := s.pdf.Render(data, title)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
	}
	return out, nil
}

func studentCourseRows(student *models.Student, courseCode string, weights models.WeightTable) []map[string]string {
	var rows []map[string]string
	for _, assignment := range student.Assignments(courseCode) {
		pct, err := assignment.Percentage(weights)
		if err != nil {
			continue
		}
		rows = append(rows, map[string]string{
			"Course":     courseCode,
			"Assignment": assignment.Name,
			"Type":       assignment.Type,
			"Week":       strconv.Itoa(assignment.Week),
			"Earned":     formatScore(assignment.EarnedPoints),
			"Max":        formatScore(assignment.MaxPoints),
			"Percent":    formatScore(pct),
		})
	}
	return rows
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
