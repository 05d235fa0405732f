package queries_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	docstoreadapter "github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/class-catalog-service/adapters/docstore"
	"github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/class-catalog-service/application/queries"
	domainerrors "github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/class-catalog-service/domain/errors"
	"github.com/toma2023/fluent-academy-serverside/internal/platform/docstore"
	"github.com/toma2023/fluent-academy-serverside/internal/platform/docstore/memory"
)

func seedClasses(t *testing.T, store *memory.Store, enrollments []int64, status string) {
	t.Helper()
	classes := store.Collection(docstore.CollectionClasses)
	for i, enrolled := range enrollments {
		_, err := classes.InsertOne(context.Background(), map[string]any{
			"_id":           fmt.Sprintf("%s-%d", status, i),
			"name":          fmt.Sprintf("class %d", i),
			"status":        status,
			"seats":         10,
			"enrollStudent": enrolled,
		})
		if err != nil {
			t.Fatalf("seed class: %v", err)
		}
	}
}

func TestListApprovedTopClassesRanksByEnrollment(t *testing.T) {
	store := memory.NewStore()
	seedClasses(t, store, []int64{1, 9, 3, 7, 2}, "approved")
	seedClasses(t, store, []int64{50}, "pending")

	uc := queries.ListApprovedTopClassesUseCase{Classes: docstoreadapter.NewRepository(store, nil)}
	classes, err := uc.Execute(context.Background(), queries.ListTopClassesQuery{SortBy: "enrollStudent", Limit: 3})
	if err != nil {
		t.Fatalf("list top classes: %v", err)
	}

	want := []int64{9, 7, 3}
	if len(classes) != len(want) {
		t.Fatalf("expected %d classes, got %d", len(want), len(classes))
	}
	for i, class := range classes {
		if class.EnrollStudent != want[i] {
			t.Fatalf("position %d: expected enrollStudent %d, got %d", i, want[i], class.EnrollStudent)
		}
	}
}

func TestListApprovedTopClassesWithoutSortKeepsStorageOrder(t *testing.T) {
	store := memory.NewStore()
	seedClasses(t, store, []int64{1, 9, 3}, "approved")
	seedClasses(t, store, []int64{4}, "denied")

	uc := queries.ListApprovedTopClassesUseCase{Classes: docstoreadapter.NewRepository(store, nil)}
	classes, err := uc.Execute(context.Background(), queries.ListTopClassesQuery{SortBy: "price"})
	if err != nil {
		t.Fatalf("list top classes: %v", err)
	}
	if len(classes) != 3 {
		t.Fatalf("expected only approved classes, got %d", len(classes))
	}
	if classes[0].ID != "approved-0" || classes[2].ID != "approved-2" {
		t.Fatalf("expected storage order, got %+v", classes)
	}
}

func TestListApprovedTopClassesRejectsNegativeLimit(t *testing.T) {
	uc := queries.ListApprovedTopClassesUseCase{Classes: docstoreadapter.NewRepository(memory.NewStore(), nil)}
	_, err := uc.Execute(context.Background(), queries.ListTopClassesQuery{Limit: -1})
	if !errors.Is(err, domainerrors.ErrInvalidListQuery) {
		t.Fatalf("expected ErrInvalidListQuery, got %v", err)
	}
}
