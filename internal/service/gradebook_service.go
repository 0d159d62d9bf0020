package service

import (
	"context"
	"sort"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/gradekeeper/internal/models"
	appErrors "github.com/noah-isme/gradekeeper/pkg/errors"
)

// AddAssignmentGradeRequest carries a scored assignment into a
// student's course grade map.
type AddAssignmentGradeRequest struct {
	StudentID  string             `json:"student_id" validate:"required"`
	CourseCode string             `json:"course_code" validate:"required"`
	Assignment *models.Assignment `json:"assignment" validate:"required"`
}

// UpdateAssignmentGradeRequest mutates an existing assignment in place.
type UpdateAssignmentGradeRequest struct {
	StudentID      string  `json:"student_id" validate:"required"`
	CourseCode     string  `json:"course_code" validate:"required"`
	AssignmentName string  `json:"assignment_name" validate:"required"`
	EarnedPoints   float64 `json:"earned_points"`
	MaxPoints      float64 `json:"max_points" validate:"required"`
}

// GradebookService is the top-level registry mapping student ID to
// student record. It owns student lifetime and enforces existence and
// enrollment invariants on every grade mutation. Not safe for
// concurrent use; callers serialize access.
type GradebookService struct {
	students  map[string]*models.Student
	weights   models.WeightTable
	validator *validator.Validate
	logger    *zap.Logger
	metrics   *MetricsService
}

// NewGradebookService constructs the registry.
func NewGradebookService(weights models.WeightTable, validate *validator.Validate, logger *zap.Logger, metrics *MetricsService) *GradebookService {
	if weights == nil {
		weights = models.DefaultWeights()
	}
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GradebookService{
		students:  make(map[string]*models.Student),
		weights:   weights,
		validator: validate,
		logger:    logger,
		metrics:   metrics,
	}
}

// Weights exposes the grading policy in effect.
func (s *GradebookService) Weights() models.WeightTable {
	return s.weights
}

// AddStudent registers a student record under its ID.
func (s *GradebookService) AddStudent(ctx context.Context, student *models.Student) error {
	if student == nil {
		return appErrors.Clone(appErrors.ErrValidation, "student required")
	}
	if _, ok := s.students[student.ID]; ok {
		return appErrors.Clone(appErrors.ErrDuplicateStudent,
			"student "+student.ID+" already registered")
	}
	s.students[student.ID] = student
	s.metrics.SetRegisteredStudents(len(s.students))
	s.logger.Debug("student registered", zap.String("student_id", student.ID))
	return nil
}

// Student looks up a registered student by ID.
func (s *GradebookService) Student(ctx context.Context, studentID string) (*models.Student, error) {
	student, ok := s.students[studentID]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrStudentNotFound,
			"student "+studentID+" not registered")
	}
	return student, nil
}

// Students lists registered students ordered by ID.
func (s *GradebookService) Students(ctx context.Context) []*models.Student {
	list := make([]*models.Student, 0, len(s.students))
	for _, student := range s.students {
		list = append(list, student)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}

// RegisteredCount returns the registry population.
func (s *GradebookService) RegisteredCount(ctx context.Context) int {
	return len(s.students)
}

// AddAssignmentGrade stores a scored assignment for a registered,
// enrolled student. State is untouched on any failure.
func (s *GradebookService) AddAssignmentGrade(ctx context.Context, req AddAssignmentGradeRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid grade payload")
	}
	student, err := s.Student(ctx, req.StudentID)
	if err != nil {
		return err
	}
	if err := student.AddAssignment(req.CourseCode, req.Assignment); err != nil {
		return err
	}
	s.metrics.IncGradeRecorded()
	s.logger.Debug("grade recorded",
		zap.String("student_id", req.StudentID),
		zap.String("course", req.CourseCode),
		zap.String("assignment", req.Assignment.Name))
	return nil
}

// UpdateAssignmentGrade rescores an existing assignment in place.
func (s *GradebookService) UpdateAssignmentGrade(ctx context.Context, req UpdateAssignmentGradeRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid update payload")
	}
	student, err := s.Student(ctx, req.StudentID)
	if err != nil {
		return err
	}
	assignment, err := student.Assignment(req.CourseCode, req.AssignmentName)
	if err != nil {
		return err
	}
	if err := assignment.Update(req.EarnedPoints, req.MaxPoints); err != nil {
		return err
	}
	s.metrics.IncGradeUpdated()
	s.logger.Debug("grade updated",
		zap.String("student_id", req.StudentID),
		zap.String("course", req.CourseCode),
		zap.String("assignment", req.AssignmentName))
	return nil
}

// DeleteAssignmentGrade removes exactly the named assignment entry.
func (s *GradebookService) DeleteAssignmentGrade(ctx context.Context, studentID, courseCode, assignmentName string) error {
	student, err := s.Student(ctx, studentID)
	if err != nil {
		return err
	}
	if err := student.RemoveAssignment(courseCode, assignmentName); err != nil {
		return err
	}
	s.metrics.IncGradeDeleted()
	s.logger.Debug("grade deleted",
		zap.String("student_id", studentID),
		zap.String("course", courseCode),
		zap.String("assignment", assignmentName))
	return nil
}

// StudentAverage returns the weighted average for a student, scoped to
// a course when courseCode is non-empty, across all courses otherwise.
func (s *GradebookService) StudentAverage(ctx context.Context, studentID, courseCode string) (float64, error) {
	student, err := s.Student(ctx, studentID)
	if err != nil {
		return 0, err
	}
	if courseCode == "" {
		return student.OverallAverage(s.weights), nil
	}
	return student.CourseAverage(courseCode, s.weights), nil
}

// GradeRecords flattens a student's stored grades for filtering.
func (s *GradebookService) GradeRecords(ctx context.Context, studentID string) ([]models.GradeRecord, error) {
	student, err := s.Student(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return student.GradeRecords(), nil
}
