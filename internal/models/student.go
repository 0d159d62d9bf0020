package models

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	appErrors "github.com/noah-isme/gradekeeper/pkg/errors"
)

// Student owns a per-course mapping of assignment name to Assignment.
// Enrollment in a course is represented by the presence of its (possibly
// empty) assignment map.
type Student struct {
	ID     string
	Name   string
	grades map[string]map[string]*Assignment
}

// NewStudent constructs a student. An empty id gets a generated UUID.
func NewStudent(id, name string) (*Student, error) {
	if strings.TrimSpace(name) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "student name cannot be empty")
	}
	if strings.TrimSpace(id) == "" {
		id = uuid.NewString()
	}
	return &Student{
		ID:     id,
		Name:   name,
		grades: make(map[string]map[string]*Assignment),
	}, nil
}

// Enroll joins a course and initializes its empty assignment map.
// Re-enrolling is an explicit error so callers can detect it.
func (s *Student) Enroll(courseCode string) error {
	code := normalizeCourseCode(courseCode)
	if code == "" {
		return appErrors.Clone(appErrors.ErrValidation, "course code cannot be empty")
	}
	if _, ok := s.grades[code]; ok {
		return appErrors.Clone(appErrors.ErrAlreadyEnrolled, "already enrolled in "+code)
	}
	s.grades[code] = make(map[string]*Assignment)
	return nil
}

// EnrolledIn reports whether the student has joined the course.
func (s *Student) EnrolledIn(courseCode string) bool {
	_, ok := s.grades[normalizeCourseCode(courseCode)]
	return ok
}

// Courses lists enrolled course codes in stable order.
func (s *Student) Courses() []string {
	codes := make([]string, 0, len(s.grades))
	for code := range s.grades {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// AddAssignment stores a scored assignment under the course. The student
// must be enrolled, and assignment names are unique per course; a
// duplicate add fails rather than silently overwriting. Updates go
// through Assignment.Update.
func (s *Student) AddAssignment(courseCode string, assignment *Assignment) error {
	if assignment == nil {
		return appErrors.Clone(appErrors.ErrValidation, "assignment required")
	}
	code := normalizeCourseCode(courseCode)
	course, ok := s.grades[code]
	if !ok {
		return appErrors.Clone(appErrors.ErrNotEnrolled, "not enrolled in "+code)
	}
	if _, exists := course[assignment.Name]; exists {
		return appErrors.Clone(appErrors.ErrDuplicateAssignment,
			"assignment "+assignment.Name+" already recorded for "+code)
	}
	course[assignment.Name] = assignment
	return nil
}

// Assignment looks up a stored assignment by course and name.
func (s *Student) Assignment(courseCode, assignmentName string) (*Assignment, error) {
	code := normalizeCourseCode(courseCode)
	course, ok := s.grades[code]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrCourseNotFound, "no grades for course "+code)
	}
	assignment, ok := course[assignmentName]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrAssignmentNotFound,
			"assignment "+assignmentName+" not found in "+code)
	}
	return assignment, nil
}

// RemoveAssignment deletes exactly the named entry.
func (s *Student) RemoveAssignment(courseCode, assignmentName string) error {
	if _, err := s.Assignment(courseCode, assignmentName); err != nil {
		return err
	}
	delete(s.grades[normalizeCourseCode(courseCode)], assignmentName)
	return nil
}

// Assignments lists stored assignments for a course ordered by name.
// Unknown courses yield an empty list.
func (s *Student) Assignments(courseCode string) []*Assignment {
	course := s.grades[normalizeCourseCode(courseCode)]
	names := make([]string, 0, len(course))
	for name := range course {
		names = append(names, name)
	}
	sort.Strings(names)
	list := make([]*Assignment, 0, len(names))
	for _, name := range names {
		list = append(list, course[name])
	}
	return list
}

// CourseAverage returns the mean weighted percentage within one course,
// 0.0 when no grades exist.
func (s *Student) CourseAverage(courseCode string, weights WeightTable) float64 {
	return averagePercentage(s.grades[normalizeCourseCode(courseCode)], weights)
}

// OverallAverage returns the mean weighted percentage across every
// enrolled course combined, 0.0 when no grades exist.
func (s *Student) OverallAverage(weights WeightTable) float64 {
	combined := make(map[string]*Assignment)
	for code, course := range s.grades {
		for name, assignment := range course {
			combined[code+"/"+name] = assignment
		}
	}
	return averagePercentage(combined, weights)
}

// GradeRecords flattens all stored assignments into filtering records,
// ordered by course code then assignment name.
func (s *Student) GradeRecords() []GradeRecord {
	var records []GradeRecord
	for _, code := range s.Courses() {
		for _, assignment := range s.Assignments(code) {
			record, err := assignment.GradeRecord(s.Name)
			if err != nil {
				continue
			}
			records = append(records, record)
		}
	}
	return records
}

func averagePercentage(assignments map[string]*Assignment, weights WeightTable) float64 {
	if len(assignments) == 0 {
		return 0.0
	}
	total := 0.0
	count := 0
	for _, assignment := range assignments {
		pct, err := assignment.Percentage(weights)
		if err != nil {
			continue
		}
		total += pct
		count++
	}
	if count == 0 {
		return 0.0
	}
	return round2(total / float64(count))
}

func normalizeCourseCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
