package services

import (
	"reflect"
	"testing"

	"github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/enrollment-service/domain/entities"
)

func TestToMinorUnits(t *testing.T) {
	cases := []struct {
		price float64
		want  int64
	}{
		{50, 5000},
		{19.99, 1999},
		{0.1 + 0.2, 30},
		{0.29, 29},
		{0, 0},
	}
	for _, tc := range cases {
		if got := ToMinorUnits(tc.price); got != tc.want {
			t.Fatalf("ToMinorUnits(%v): expected %d, got %d", tc.price, tc.want, got)
		}
	}
}

func TestSeatTargets(t *testing.T) {
	items := []string{"c1", " ", "c2", "c1"}

	if got := SeatTargets(entities.SeatPolicyAll, items); !reflect.DeepEqual(got, []string{"c1", "c2", "c1"}) {
		t.Fatalf("all policy: unexpected targets %v", got)
	}
	if got := SeatTargets(entities.SeatPolicyFirst, items); !reflect.DeepEqual(got, []string{"c1"}) {
		t.Fatalf("first policy: unexpected targets %v", got)
	}
	if got := SeatTargets(entities.SeatPolicyAll, nil); len(got) != 0 {
		t.Fatalf("expected no targets, got %v", got)
	}
}
