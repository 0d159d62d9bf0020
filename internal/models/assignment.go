package models

import (
	"fmt"
	"math"
	"strings"

	appErrors "github.com/noah-isme/gradekeeper/pkg/errors"
)

// WeightTable maps an assignment type to its score multiplier.
type WeightTable map[string]float64

// DefaultWeights returns the standard grading policy: quizzes count
// extra, projects slightly less, everything else at face value.
func DefaultWeights() WeightTable {
	return WeightTable{
		"homework": 1.0,
		"exam":     1.0,
		"quiz":     1.2,
		"project":  0.9,
	}
}

// Weight resolves the multiplier for an assignment type. Unknown types
// weigh 1.0.
func (t WeightTable) Weight(assignmentType string) float64 {
	if w, ok := t[strings.ToLower(assignmentType)]; ok {
		return w
	}
	return 1.0
}

// Merge overlays overrides onto a copy of the table and returns it.
func (t WeightTable) Merge(overrides map[string]float64) WeightTable {
	merged := make(WeightTable, len(t)+len(overrides))
	for k, w := range t {
		merged[strings.ToLower(k)] = w
	}
	for k, w := range overrides {
		if w > 0 {
			merged[strings.ToLower(k)] = w
		}
	}
	return merged
}

// Assignment is a single scored assignment instance owned by a student's
// course grade map.
type Assignment struct {
	Name         string  `json:"name"`
	Type         string  `json:"assignment_type"`
	MaxPoints    float64 `json:"max_points"`
	EarnedPoints float64 `json:"earned_points"`
	Week         int     `json:"week"`
	Late         bool    `json:"is_late"`
}

// NewAssignment constructs an unscored assignment template.
func NewAssignment(name, assignmentType string, maxPoints float64, week int) (*Assignment, error) {
	if strings.TrimSpace(name) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "assignment name cannot be empty")
	}
	if maxPoints <= 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "max points must be positive")
	}
	return &Assignment{
		Name:      name,
		Type:      strings.ToLower(assignmentType),
		MaxPoints: maxPoints,
		Week:      week,
	}, nil
}

// RecordScore sets the earned points, rejecting values outside [0, max].
func (a *Assignment) RecordScore(earnedPoints float64) error {
	if earnedPoints < 0 || earnedPoints > a.MaxPoints {
		return appErrors.Clone(appErrors.ErrValidation,
			fmt.Sprintf("earned points must be between 0 and %g", a.MaxPoints))
	}
	a.EarnedPoints = earnedPoints
	return nil
}

// Update replaces both score fields, re-validated as a pair.
func (a *Assignment) Update(earnedPoints, maxPoints float64) error {
	if maxPoints <= 0 {
		return appErrors.Clone(appErrors.ErrValidation, "max points must be positive")
	}
	if earnedPoints < 0 || earnedPoints > maxPoints {
		return appErrors.Clone(appErrors.ErrValidation,
			fmt.Sprintf("earned points must be between 0 and %g", maxPoints))
	}
	a.EarnedPoints = earnedPoints
	a.MaxPoints = maxPoints
	return nil
}

// Percentage computes the weighted percentage score, rounded to two
// decimals. RecordScore and Update reject negative earned values, but a
// direct struct write can still produce one; that case errors here.
func (a *Assignment) Percentage(weights WeightTable) (float64, error) {
	if a.EarnedPoints < 0 {
		return 0, appErrors.Clone(appErrors.ErrValidation, "earned points negative")
	}
	return round2(a.EarnedPoints / a.MaxPoints * 100 * weights.Weight(a.Type)), nil
}

// Clone returns an independent copy of the assignment.
func (a *Assignment) Clone() *Assignment {
	clone := *a
	return &clone
}

// GradeRecord flattens a scored assignment into the filtering form.
func (a *Assignment) GradeRecord(studentName string) (GradeRecord, error) {
	if strings.TrimSpace(studentName) == "" {
		return GradeRecord{}, appErrors.Clone(appErrors.ErrValidation, "student name cannot be empty")
	}
	return GradeRecord{
		StudentName:    studentName,
		AssignmentType: a.Type,
		Score:          a.EarnedPoints,
		IsLate:         a.Late,
		Week:           a.Week,
	}, nil
}

func round2(v float64) float64 {
	return math.RoundToEven(v*100) / 100
}
