package entities

import "strings"

type ClassStatus string

const (
	ClassStatusPending  ClassStatus = "pending"
	ClassStatusApproved ClassStatus = "approved"
	ClassStatusDenied   ClassStatus = "denied"
)

func ParseClassStatus(raw string) (ClassStatus, bool) {
	switch status := ClassStatus(strings.ToLower(strings.TrimSpace(raw))); status {
	case ClassStatusPending, ClassStatusApproved, ClassStatusDenied:
		return status, true
	default:
		return "", false
	}
}

type Class struct {
	ID              string
	Name            string
	Image           string
	Price           float64
	Seats           int64
	EnrollStudent   int64
	InstructorName  string
	InstructorEmail string
	Status          ClassStatus
	Feedback        string
}

// ClassFields is a partial class write; nil fields are left untouched.
type ClassFields struct {
	Name     *string
	Price    *float64
	Seats    *int64
	Status   *ClassStatus
	Feedback *string
}

func (f ClassFields) Empty() bool {
	return f.Name == nil && f.Price == nil && f.Seats == nil && f.Status == nil && f.Feedback == nil
}

type Instructor struct {
	ID              string
	Name            string
	Email           string
	Photo           string
	NumberOfClasses int64
}
