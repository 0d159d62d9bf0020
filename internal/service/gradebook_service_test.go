package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/gradekeeper/internal/models"
	appErrors "github.com/noah-isme/gradekeeper/pkg/errors"
)

func newTestGradebook(t *testing.T) *GradebookService {
	t.Helper()
	return NewGradebookService(models.DefaultWeights(), validator.New(), zap.NewNop(), NewMetricsService())
}

func registeredStudent(t *testing.T, svc *GradebookService, id, name string, courses ...string) *models.Student {
	t.Helper()
	student, err := models.NewStudent(id, name)
	require.NoError(t, err)
	for _, course := range courses {
		require.NoError(t, student.Enroll(course))
	}
	require.NoError(t, svc.AddStudent(context.Background(), student))
	return student
}

func scoredAssignment(t *testing.T, name, assignmentType string, earned, max float64, week int) *models.Assignment {
	t.Helper()
	a, err := models.NewAssignment(name, assignmentType, max, week)
	require.NoError(t, err)
	require.NoError(t, a.RecordScore(earned))
	return a
}

func TestAddStudentRejectsDuplicateID(t *testing.T) {
	svc := newTestGradebook(t)
	registeredStudent(t, svc, "1", "Alex")

	dup, err := models.NewStudent("1", "Impostor")
	require.NoError(t, err)
	err = svc.AddStudent(context.Background(), dup)
	assert.True(t, appErrors.Is(err, appErrors.ErrDuplicateStudent))
	assert.Equal(t, 1, svc.RegisteredCount(context.Background()))
}

func TestAddAssignmentGradeRequiresStudent(t *testing.T) {
	svc := newTestGradebook(t)

	err := svc.AddAssignmentGrade(context.Background(), AddAssignmentGradeRequest{
		StudentID:  "999",
		CourseCode: "MATH",
		Assignment: scoredAssignment(t, "HW", "homework", 100, 100, 1),
	})
	assert.True(t, appErrors.Is(err, appErrors.ErrStudentNotFound))
}

func TestAddAssignmentGradeRequiresEnrollment(t *testing.T) {
	svc := newTestGradebook(t)
	student := registeredStudent(t, svc, "1", "Alex")

	err := svc.AddAssignmentGrade(context.Background(), AddAssignmentGradeRequest{
		StudentID:  "1",
		CourseCode: "MATH",
		Assignment: scoredAssignment(t, "HW", "homework", 100, 100, 1),
	})
	assert.True(t, appErrors.Is(err, appErrors.ErrNotEnrolled))
	assert.Empty(t, student.GradeRecords())
}

func TestAddAssignmentGradeValidatesPayload(t *testing.T) {
	svc := newTestGradebook(t)

	err := svc.AddAssignmentGrade(context.Background(), AddAssignmentGradeRequest{})
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestUpdateAssignmentGradeErrors(t *testing.T) {
	svc := newTestGradebook(t)
	registeredStudent(t, svc, "1", "Alex", "MATH")

	err := svc.UpdateAssignmentGrade(context.Background(), UpdateAssignmentGradeRequest{
		StudentID: "999", CourseCode: "MATH", AssignmentName: "HW",
		EarnedPoints: 90, MaxPoints: 100,
	})
	assert.True(t, appErrors.Is(err, appErrors.ErrStudentNotFound))

	err = svc.UpdateAssignmentGrade(context.Background(), UpdateAssignmentGradeRequest{
		StudentID: "1", CourseCode: "MATH", AssignmentName: "HW",
		EarnedPoints: 90, MaxPoints: 100,
	})
	assert.True(t, appErrors.Is(err, appErrors.ErrAssignmentNotFound))
}

func TestDeleteAssignmentGradeErrors(t *testing.T) {
	svc := newTestGradebook(t)
	registeredStudent(t, svc, "1", "Alex", "MATH")

	err := svc.DeleteAssignmentGrade(context.Background(), "1", "MATH", "Fake")
	assert.True(t, appErrors.Is(err, appErrors.ErrAssignmentNotFound))
}

func TestGradeLifecycleEndToEnd(t *testing.T) {
	svc := newTestGradebook(t)
	ctx := context.Background()
	registeredStudent(t, svc, "1", "Alex", "MATH")

	require.NoError(t, svc.AddAssignmentGrade(ctx, AddAssignmentGradeRequest{
		StudentID:  "1",
		CourseCode: "MATH",
		Assignment: scoredAssignment(t, "Homework", "homework", 80, 100, 1),
	}))
	avg, err := svc.StudentAverage(ctx, "1", "MATH")
	require.NoError(t, err)
	assert.Equal(t, 80.0, avg)

	require.NoError(t, svc.UpdateAssignmentGrade(ctx, UpdateAssignmentGradeRequest{
		StudentID: "1", CourseCode: "MATH", AssignmentName: "Homework",
		EarnedPoints: 90, MaxPoints: 100,
	}))
	avg, err = svc.StudentAverage(ctx, "1", "MATH")
	require.NoError(t, err)
	assert.Equal(t, 90.0, avg)

	require.NoError(t, svc.DeleteAssignmentGrade(ctx, "1", "MATH", "Homework"))
	avg, err = svc.StudentAverage(ctx, "1", "MATH")
	require.NoError(t, err)
	assert.Equal(t, 0.0, avg)

	snapshot := svc.metrics.Snapshot()
	assert.Equal(t, uint64(1), snapshot.GradesRecorded)
	assert.Equal(t, uint64(1), snapshot.GradesUpdated)
	assert.Equal(t, uint64(1), snapshot.GradesDeleted)
}

func TestQuizWeightOverridesRawRatio(t *testing.T) {
	svc := newTestGradebook(t)
	ctx := context.Background()
	registeredStudent(t, svc, "1", "Alex", "MATH")

	require.NoError(t, svc.AddAssignmentGrade(ctx, AddAssignmentGradeRequest{
		StudentID:  "1",
		CourseCode: "MATH",
		Assignment: scoredAssignment(t, "Quiz 1", "quiz", 8, 10, 2),
	}))

	avg, err := svc.StudentAverage(ctx, "1", "MATH")
	require.NoError(t, err)
	assert.Equal(t, 96.0, avg)
}

func TestConfiguredWeightsRespected(t *testing.T) {
	weights := models.DefaultWeights().Merge(map[string]float64{"quiz": 1.0})
	svc := NewGradebookService(weights, validator.New(), zap.NewNop(), nil)
	ctx := context.Background()
	registeredStudent(t, svc, "1", "Alex", "MATH")

	require.NoError(t, svc.AddAssignmentGrade(ctx, AddAssignmentGradeRequest{
		StudentID:  "1",
		CourseCode: "MATH",
		Assignment: scoredAssignment(t, "Quiz 1", "quiz", 8, 10, 2),
	}))

	avg, err := svc.StudentAverage(ctx, "1", "MATH")
	require.NoError(t, err)
	assert.Equal(t, 80.0, avg)
}

func TestStudentAverageOverall(t *testing.T) {
	svc := newTestGradebook(t)
	ctx := context.Background()
	registeredStudent(t, svc, "1", "Alex", "MATH", "ART")

	require.NoError(t, svc.AddAssignmentGrade(ctx, AddAssignmentGradeRequest{
		StudentID: "1", CourseCode: "MATH",
		Assignment: scoredAssignment(t, "HW", "homework", 80, 100, 1),
	}))
	require.NoError(t, svc.AddAssignmentGrade(ctx, AddAssignmentGradeRequest{
		StudentID: "1", CourseCode: "ART",
		Assignment: scoredAssignment(t, "PJ", "project", 100, 100, 2),
	}))

	avg, err := svc.StudentAverage(ctx, "1", "")
	require.NoError(t, err)
	assert.Equal(t, 85.0, avg)
}

func TestGradeRecordsFlattening(t *testing.T) {
	svc := newTestGradebook(t)
	ctx := context.Background()
	registeredStudent(t, svc, "1", "Alex", "MATH")

	require.NoError(t, svc.AddAssignmentGrade(ctx, AddAssignmentGradeRequest{
		StudentID: "1", CourseCode: "MATH",
		Assignment: scoredAssignment(t, "HW", "homework", 80, 100, 1),
	}))

	records, err := svc.GradeRecords(ctx, "1")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Alex", records[0].StudentName)
	assert.Equal(t, 80.0, records[0].Score)

	_, err = svc.GradeRecords(ctx, "999")
	assert.True(t, appErrors.Is(err, appErrors.ErrStudentNotFound))
}
