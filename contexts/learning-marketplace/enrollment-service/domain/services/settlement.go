package services

import (
	"math"
	"strings"

	"github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/enrollment-service/domain/entities"
)

// ToMinorUnits converts a major-unit price to the provider's integer amount.
func ToMinorUnits(price float64) int64 {
	return int64(math.Round(price * 100))
}

// SeatTargets returns the class ids whose counters a payment adjusts.
// Blank ids are dropped. Repeated ids are kept: each purchase takes a seat.
func SeatTargets(policy entities.SeatPolicy, selectedItems []string) []string {
	targets := make([]string, 0, len(selectedItems))
	for _, item := range selectedItems {
		classID := strings.TrimSpace(item)
		if classID == "" {
			continue
		}
		targets = append(targets, classID)
		if policy == entities.SeatPolicyFirst {
			break
		}
	}
	return targets
}
