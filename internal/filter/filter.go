// Package filter provides pure, order-preserving operations over flat
// grade-record collections. Every function returns a fresh slice and
// leaves its input untouched, so filters compose freely.
package filter

import (
	"strings"

	"github.com/noah-isme/gradekeeper/internal/models"
	appErrors "github.com/noah-isme/gradekeeper/pkg/errors"
)

// Records is an ordered collection of flat grade records. The filter
// functions accept it directly since it is a plain record slice.
type Records []models.GradeRecord

// Append adds a record after checking the required identifying fields.
// Score and week may be zero-valued, but a record without a student
// name or assignment type is untraceable and is rejected.
func (r *Records) Append(record models.GradeRecord) error {
	if strings.TrimSpace(record.StudentName) == "" {
		return appErrors.Clone(appErrors.ErrValidation, "grade record requires a student name")
	}
	if strings.TrimSpace(record.AssignmentType) == "" {
		return appErrors.Clone(appErrors.ErrValidation, "grade record requires an assignment type")
	}
	*r = append(*r, record)
	return nil
}

// ByType keeps records whose assignment type matches exactly.
func ByType(records []models.GradeRecord, assignmentType string) []models.GradeRecord {
	return keep(records, func(r models.GradeRecord) bool {
		return r.AssignmentType == assignmentType
	})
}

// Late keeps records flagged as late submissions.
func Late(records []models.GradeRecord) []models.GradeRecord {
	return keep(records, func(r models.GradeRecord) bool {
		return r.IsLate
	})
}

// ByScoreRange keeps records whose score falls within [minScore,
// maxScore]. An unset score counts as 0 and so matches ranges that
// include zero.
func ByScoreRange(records []models.GradeRecord, minScore, maxScore float64) []models.GradeRecord {
	return keep(records, func(r models.GradeRecord) bool {
		return r.Score >= minScore && r.Score <= maxScore
	})
}

// ByStudent keeps records for the named student, compared
// case-insensitively.
func ByStudent(records []models.GradeRecord, studentName string) []models.GradeRecord {
	return keep(records, func(r models.GradeRecord) bool {
		return strings.EqualFold(r.StudentName, studentName)
	})
}

// ByWeek keeps records submitted during the given week.
func ByWeek(records []models.GradeRecord, week int) []models.GradeRecord {
	return keep(records, func(r models.GradeRecord) bool {
		return r.Week == week
	})
}

func keep(records []models.GradeRecord, match func(models.GradeRecord) bool) []models.GradeRecord {
	result := make([]models.GradeRecord, 0, len(records))
	for _, record := range records {
		if match(record) {
			result = append(result, record)
		}
	}
	return result
}
