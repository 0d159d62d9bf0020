package models

import (
	"sort"
	"strings"

	"github.com/montanaflynn/stats"

	appErrors "github.com/noah-isme/gradekeeper/pkg/errors"
)

// Course holds a roster of enrolled students. The roster keeps
// non-owning references; student lifetime belongs to the registry.
type Course struct {
	Code       string
	Name       string
	Instructor string
	students   map[string]*Student
}

// CourseDistribution summarises per-student averages for a course.
type CourseDistribution struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
}

// NewCourse constructs a course, normalizing the code to uppercase.
func NewCourse(code, name, instructor string) (*Course, error) {
	if strings.TrimSpace(code) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "course code cannot be empty")
	}
	if strings.TrimSpace(name) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "course name cannot be empty")
	}
	if strings.TrimSpace(instructor) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "instructor name cannot be empty")
	}
	return &Course{
		Code:       normalizeCourseCode(code),
		Name:       name,
		Instructor: instructor,
		students:   make(map[string]*Student),
	}, nil
}

// AddStudent puts a student on the roster, keyed by student ID.
func (c *Course) AddStudent(student *Student) error {
	if student == nil {
		return appErrors.Clone(appErrors.ErrValidation, "student required")
	}
	if _, ok := c.students[student.ID]; ok {
		return appErrors.Clone(appErrors.ErrDuplicateEnrollment,
			student.Name+" already on roster for "+c.Code)
	}
	c.students[student.ID] = student
	return nil
}

// HasStudent reports roster membership by student ID.
func (c *Course) HasStudent(studentID string) bool {
	_, ok := c.students[studentID]
	return ok
}

// EnrollmentCount returns the roster size.
func (c *Course) EnrollmentCount() int {
	return len(c.students)
}

// Students lists the roster ordered by student ID.
func (c *Course) Students() []*Student {
	list := make([]*Student, 0, len(c.students))
	for _, student := range c.students {
		list = append(list, student)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}

// CourseAverage returns the mean of each rostered student's average in
// this course, 0.0 when the roster is empty.
func (c *Course) CourseAverage(weights WeightTable) float64 {
	averages := c.studentAverages(weights)
	if len(averages) == 0 {
		return 0.0
	}
	mean, err := stats.Mean(averages)
	if err != nil {
		return 0.0
	}
	return round2(mean)
}

// StudentsByPerformance filters the roster on per-course average,
// bounds inclusive.
func (c *Course) StudentsByPerformance(weights WeightTable, minScore, maxScore float64) []*Student {
	var matched []*Student
	for _, student := range c.Students() {
		avg := student.CourseAverage(c.Code, weights)
		if avg >= minScore && avg <= maxScore {
			matched = append(matched, student)
		}
	}
	return matched
}

// Distribution aggregates per-student course averages. Returns nil for
// an empty roster.
func (c *Course) Distribution(weights WeightTable) *CourseDistribution {
	averages := c.studentAverages(weights)
	if len(averages) == 0 {
		return nil
	}
	min, err := stats.Min(averages)
	if err != nil {
		return nil
	}
	max, err := stats.Max(averages)
	if err != nil {
		return nil
	}
	mean, err := stats.Mean(averages)
	if err != nil {
		return nil
	}
	median, err := stats.Median(averages)
	if err != nil {
		return nil
	}
	return &CourseDistribution{
		Min:    round2(min),
		Max:    round2(max),
		Mean:   round2(mean),
		Median: round2(median),
	}
}

func (c *Course) studentAverages(weights WeightTable) stats.Float64Data {
	averages := make(stats.Float64Data, 0, len(c.students))
	for _, student := range c.students {
		averages = append(averages, student.CourseAverage(c.Code, weights))
	}
	return averages
}
