package models

import (
	"sort"
	"strings"

	appErrors "github.com/noah-isme/gradekeeper/pkg/errors"
)

// Teacher associates an instructor with the courses they manage and
// mediates grade entry against teaching and enrollment invariants.
type Teacher struct {
	Name       string
	Department string
	Username   string
	courses    map[string]*Course
}

// NewTeacher constructs a teacher. A blank username is derived from the
// name (lowercase, spaces replaced with underscores).
func NewTeacher(name, department, username string) (*Teacher, error) {
	if strings.TrimSpace(name) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "teacher name cannot be empty")
	}
	if strings.TrimSpace(department) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "department cannot be empty")
	}
	if strings.TrimSpace(username) == "" {
		username = strings.ReplaceAll(strings.ToLower(name), " ", "_")
	}
	return &Teacher{
		Name:       name,
		Department: department,
		Username:   username,
		courses:    make(map[string]*Course),
	}, nil
}

// AddCourse adds a course to the teaching load.
func (t *Teacher) AddCourse(course *Course) error {
	if course == nil {
		return appErrors.Clone(appErrors.ErrValidation, "course required")
	}
	if _, ok := t.courses[course.Code]; ok {
		return appErrors.Clone(appErrors.ErrDuplicateCourse, "already teaching "+course.Code)
	}
	t.courses[course.Code] = course
	return nil
}

// Teaches reports whether the teacher manages the course code.
func (t *Teacher) Teaches(courseCode string) bool {
	_, ok := t.courses[normalizeCourseCode(courseCode)]
	return ok
}

// CoursesTaught lists taught course codes in stable order.
func (t *Teacher) CoursesTaught() []string {
	codes := make([]string, 0, len(t.courses))
	for code := range t.courses {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Courses lists taught courses ordered by code.
func (t *Teacher) Courses() []*Course {
	list := make([]*Course, 0, len(t.courses))
	for _, code := range t.CoursesTaught() {
		list = append(list, t.courses[code])
	}
	return list
}

// AddGradeToStudent scores an assignment template for a rostered
// student. The teacher must manage the course and the student must be
// on its roster; the template itself stays unscored so it can be reused
// across students.
func (t *Teacher) AddGradeToStudent(course *Course, student *Student, template *Assignment, earnedPoints float64, isLate bool) error {
	if course == nil || student == nil || template == nil {
		return appErrors.Clone(appErrors.ErrValidation, "course, student and assignment required")
	}
	if !t.Teaches(course.Code) {
		return appErrors.Clone(appErrors.ErrNotTeaching, "not teaching "+course.Code)
	}
	if !course.HasStudent(student.ID) {
		return appErrors.Clone(appErrors.ErrNotEnrolled,
			student.Name+" not enrolled in "+course.Code)
	}
	graded := template.Clone()
	if err := graded.RecordScore(earnedPoints); err != nil {
		return err
	}
	graded.Late = isLate
	return student.AddAssignment(course.Code, graded)
}

// TotalStudents counts distinct students across all taught courses.
func (t *Teacher) TotalStudents() int {
	seen := make(map[string]bool)
	for _, course := range t.courses {
		for _, student := range course.Students() {
			seen[student.ID] = true
		}
	}
	return len(seen)
}
