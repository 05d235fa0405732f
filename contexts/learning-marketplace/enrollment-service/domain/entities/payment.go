package entities

import (
	"strings"
	"time"
)

// Payment is the immutable record of a completed checkout.
type Payment struct {
	ID            string
	Email         string
	Price         float64
	TransactionID string
	AddItems      []string
	SelectedItems []string
	ItemNames     []string
	Date          time.Time
}

type PaymentIntent struct {
	ClientSecret string
	Amount       int64
	Currency     string
}

// EnrollmentTask lists the classes whose counters a settled payment adjusts.
type EnrollmentTask struct {
	TaskID    string
	PaymentID string
	Email     string
	ClassIDs  []string
	QueuedAt  time.Time
}

type SeatPolicy string

const (
	// SeatPolicyAll adjusts every purchased class.
	SeatPolicyAll SeatPolicy = "all"
	// SeatPolicyFirst adjusts only the first purchased class.
	SeatPolicyFirst SeatPolicy = "first"
)

func ParseSeatPolicy(raw string) (SeatPolicy, bool) {
	switch policy := SeatPolicy(strings.ToLower(strings.TrimSpace(raw))); policy {
	case "":
		return SeatPolicyAll, true
	case SeatPolicyAll, SeatPolicyFirst:
		return policy, true
	default:
		return "", false
	}
}
