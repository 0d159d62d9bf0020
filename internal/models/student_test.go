package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/gradekeeper/pkg/errors"
)

func scoredAssignment(t *testing.T, name, assignmentType string, earned, max float64, week int) *Assignment {
	t.Helper()
	a, err := NewAssignment(name, assignmentType, max, week)
	require.NoError(t, err)
	require.NoError(t, a.RecordScore(earned))
	return a
}

func TestNewStudentGeneratesID(t *testing.T) {
	_, err := NewStudent("1", "  ")
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))

	s, err := NewStudent("", "Test")
	require.NoError(t, err)
	assert.NotEmpty(t, s.ID)

	s, err = NewStudent("1", "Test")
	require.NoError(t, err)
	assert.Equal(t, "1", s.ID)
}

func TestEnrollDetectsDuplicates(t *testing.T) {
	s, err := NewStudent("1", "Test")
	require.NoError(t, err)

	require.NoError(t, s.Enroll("math"))
	assert.True(t, s.EnrolledIn("MATH"))

	err = s.Enroll("Math")
	assert.True(t, appErrors.Is(err, appErrors.ErrAlreadyEnrolled))
}

func TestAddAssignmentRequiresEnrollment(t *testing.T) {
	s, err := NewStudent("1", "Test")
	require.NoError(t, err)

	err = s.AddAssignment("MATH", scoredAssignment(t, "HW", "homework", 100, 100, 1))
	assert.True(t, appErrors.Is(err, appErrors.ErrNotEnrolled))
	assert.Empty(t, s.GradeRecords())
}

func TestAddAssignmentRejectsDuplicateName(t *testing.T) {
	s, err := NewStudent("1", "Test")
	require.NoError(t, err)
	require.NoError(t, s.Enroll("MATH"))

	require.NoError(t, s.AddAssignment("MATH", scoredAssignment(t, "HW", "homework", 80, 100, 1)))
	err = s.AddAssignment("MATH", scoredAssignment(t, "HW", "homework", 90, 100, 1))
	assert.True(t, appErrors.Is(err, appErrors.ErrDuplicateAssignment))

	stored, err := s.Assignment("MATH", "HW")
	require.NoError(t, err)
	assert.Equal(t, 80.0, stored.EarnedPoints)
}

func TestRemoveAssignment(t *testing.T) {
	s, err := NewStudent("1", "Test")
	require.NoError(t, err)
	require.NoError(t, s.Enroll("MATH"))
	require.NoError(t, s.AddAssignment("MATH", scoredAssignment(t, "HW", "homework", 80, 100, 1)))

	err = s.RemoveAssignment("SCIENCE", "HW")
	assert.True(t, appErrors.Is(err, appErrors.ErrCourseNotFound))

	err = s.RemoveAssignment("MATH", "Fake")
	assert.True(t, appErrors.Is(err, appErrors.ErrAssignmentNotFound))
	assert.Len(t, s.GradeRecords(), 1)

	require.NoError(t, s.RemoveAssignment("MATH", "HW"))
	_, err = s.Assignment("MATH", "HW")
	assert.True(t, appErrors.Is(err, appErrors.ErrAssignmentNotFound))
}

func TestAveragesEmptyIsZero(t *testing.T) {
	s, err := NewStudent("1", "Test")
	require.NoError(t, err)
	weights := DefaultWeights()

	assert.Equal(t, 0.0, s.OverallAverage(weights))
	assert.Equal(t, 0.0, s.CourseAverage("MATH", weights))

	require.NoError(t, s.Enroll("MATH"))
	assert.Equal(t, 0.0, s.CourseAverage("MATH", weights))
}

func TestCourseAndOverallAverages(t *testing.T) {
	s, err := NewStudent("1", "Test")
	require.NoError(t, err)
	require.NoError(t, s.Enroll("MATH"))
	require.NoError(t, s.Enroll("SCIENCE"))
	weights := DefaultWeights()

	require.NoError(t, s.AddAssignment("MATH", scoredAssignment(t, "HW", "homework", 80, 100, 1)))
	require.NoError(t, s.AddAssignment("MATH", scoredAssignment(t, "QZ", "quiz", 8, 10, 2)))
	require.NoError(t, s.AddAssignment("SCIENCE", scoredAssignment(t, "PJ", "project", 90, 100, 3)))

	// (80 + 96) / 2
	assert.Equal(t, 88.0, s.CourseAverage("MATH", weights))
	assert.Equal(t, 81.0, s.CourseAverage("SCIENCE", weights))
	// (80 + 96 + 81) / 3
	assert.InDelta(t, 85.67, s.OverallAverage(weights), 0.001)
}

func TestCoursesAreIndependent(t *testing.T) {
	s, err := NewStudent("1", "Test")
	require.NoError(t, err)
	require.NoError(t, s.Enroll("MATH"))
	require.NoError(t, s.Enroll("SCIENCE"))

	require.NoError(t, s.AddAssignment("MATH", scoredAssignment(t, "HW", "homework", 100, 100, 1)))
	require.NoError(t, s.AddAssignment("SCIENCE", scoredAssignment(t, "Quiz", "quiz", 9, 10, 1)))

	_, err = s.Assignment("MATH", "Quiz")
	assert.True(t, appErrors.Is(err, appErrors.ErrAssignmentNotFound))
	_, err = s.Assignment("SCIENCE", "Quiz")
	require.NoError(t, err)
}

func TestGradeRecordsOrdering(t *testing.T) {
	s, err := NewStudent("1", "Alex")
	require.NoError(t, err)
	require.NoError(t, s.Enroll("MATH"))
	require.NoError(t, s.Enroll("ART"))

	require.NoError(t, s.AddAssignment("MATH", scoredAssignment(t, "B", "homework", 80, 100, 1)))
	require.NoError(t, s.AddAssignment("MATH", scoredAssignment(t, "A", "quiz", 8, 10, 2)))
	require.NoError(t, s.AddAssignment("ART", scoredAssignment(t, "C", "project", 90, 100, 3)))

	records := s.GradeRecords()
	require.Len(t, records, 3)
	assert.Equal(t, "project", records[0].AssignmentType) // ART first
	assert.Equal(t, "quiz", records[1].AssignmentType)    // MATH/A
	assert.Equal(t, "homework", records[2].AssignmentType)
	for _, record := range records {
		assert.Equal(t, "Alex", record.StudentName)
	}
}
