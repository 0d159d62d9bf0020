package models

// GradeRecord is the flat form of a scored assignment used for
// filtering, distinct from the richer Assignment entity used for
// storage and computation. Zero values stand in for absent fields:
// Score 0, IsLate false, Week 0.
type GradeRecord struct {
	StudentName    string  `json:"name"`
	AssignmentType string  `json:"assignment_type"`
	Score          float64 `json:"score"`
	IsLate         bool    `json:"is_late"`
	Week           int     `json:"week"`
}
