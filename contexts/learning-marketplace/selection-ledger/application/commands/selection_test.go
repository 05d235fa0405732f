package commands_test

import (
	"context"
	"errors"
	"testing"

	docstoreadapter "github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/selection-ledger/adapters/docstore"
	"github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/selection-ledger/application/commands"
	"github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/selection-ledger/application/queries"
	domainerrors "github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/selection-ledger/domain/errors"
	"github.com/toma2023/fluent-academy-serverside/internal/platform/docstore/memory"
)

func TestAddSelectionAllowsDuplicatePicks(t *testing.T) {
	repo := docstoreadapter.NewRepository(memory.NewStore())
	ctx := context.Background()
	add := commands.AddSelectionUseCase{Selections: repo}

	for i := 0; i < 2; i++ {
		if _, err := add.Execute(ctx, commands.AddSelectionCommand{Email: "a@example.com", ClassID: "c1", Price: 50}); err != nil {
			t.Fatalf("add selection: %v", err)
		}
	}
	if _, err := add.Execute(ctx, commands.AddSelectionCommand{Email: "b@example.com", ClassID: "c1", Price: 50}); err != nil {
		t.Fatalf("add selection: %v", err)
	}

	selections, err := queries.ListSelectionsUseCase{Selections: repo}.Execute(ctx, "a@example.com")
	if err != nil {
		t.Fatalf("list selections: %v", err)
	}
	if len(selections) != 2 {
		t.Fatalf("expected both picks for a@example.com, got %d", len(selections))
	}
	for _, selection := range selections {
		if selection.Email != "a@example.com" {
			t.Fatalf("leaked selection of %s", selection.Email)
		}
	}
}

func TestAddSelectionValidation(t *testing.T) {
	add := commands.AddSelectionUseCase{Selections: docstoreadapter.NewRepository(memory.NewStore())}
	if _, err := add.Execute(context.Background(), commands.AddSelectionCommand{ClassID: "c1"}); !errors.Is(err, domainerrors.ErrInvalidEmail) {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}
	if _, err := add.Execute(context.Background(), commands.AddSelectionCommand{Email: "a@example.com"}); !errors.Is(err, domainerrors.ErrInvalidSelection) {
		t.Fatalf("expected ErrInvalidSelection, got %v", err)
	}
}

func TestListSelectionsWithoutEmailIsEmpty(t *testing.T) {
	selections, err := queries.ListSelectionsUseCase{Selections: docstoreadapter.NewRepository(memory.NewStore())}.Execute(context.Background(), "  ")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if selections == nil || len(selections) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", selections)
	}
}

func TestRemoveSelection(t *testing.T) {
	repo := docstoreadapter.NewRepository(memory.NewStore())
	ctx := context.Background()
	selectionID, err := commands.AddSelectionUseCase{Selections: repo}.Execute(ctx, commands.AddSelectionCommand{
		Email:   "a@example.com",
		ClassID: "c1",
	})
	if err != nil {
		t.Fatalf("add selection: %v", err)
	}

	remove := commands.RemoveSelectionUseCase{Selections: repo}
	cases := []struct {
		name string
		id   string
		want int64
	}{
		{"existing selection", selectionID, 1},
		{"already removed", selectionID, 0},
		{"unknown id", "64b7f0c2a1b2c3d4e5f60718", 0},
		{"malformed id", "not-an-id", 0},
		{"empty id", "", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			removed, err := remove.Execute(ctx, tc.id)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if removed != tc.want {
				t.Fatalf("expected %d removed, got %d", tc.want, removed)
			}
		})
	}

	if _, err := (queries.FindSelectionUseCase{Selections: repo}).Execute(ctx, selectionID); !errors.Is(err, domainerrors.ErrSelectionNotFound) {
		t.Fatalf("expected removed selection to be gone, got %v", err)
	}
}
