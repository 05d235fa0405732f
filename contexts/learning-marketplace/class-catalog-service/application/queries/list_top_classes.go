package queries

import (
	"context"
	"log/slog"
	"strings"

	application "github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/class-catalog-service/application"
	"github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/class-catalog-service/domain/entities"
	domainerrors "github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/class-catalog-service/domain/errors"
	"github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/class-catalog-service/domain/services"
	"github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/class-catalog-service/ports"
)

type ListTopClassesQuery struct {
	SortBy string
	Limit  int
}

// ListApprovedTopClassesUseCase lists approved classes, optionally ranked by
// enrollment and truncated. Ties keep storage order.
type ListApprovedTopClassesUseCase struct {
	Classes ports.ClassRepository
	Logger  *slog.Logger
}

func (uc ListApprovedTopClassesUseCase) Execute(ctx context.Context, query ListTopClassesQuery) ([]entities.Class, error) {
	if query.Limit < 0 {
		return nil, domainerrors.ErrInvalidListQuery
	}

	classes, err := uc.Classes.ListClasses(ctx, ports.ClassFilter{
		Status: entities.ClassStatusApproved,
		SortBy: services.RankingKey(strings.TrimSpace(query.SortBy)),
		Limit:  int64(query.Limit),
	})
	if err != nil {
		application.ResolveLogger(uc.Logger).Error("list top classes failed",
			"event", "catalog_list_top_classes_failed",
			"module", "learning-marketplace/class-catalog-service",
			"layer", "application",
			"sort_by", query.SortBy,
			"limit", query.Limit,
			"error", err.Error(),
		)
		return nil, err
	}
	return classes, nil
}
