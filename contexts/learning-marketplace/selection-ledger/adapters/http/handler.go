package httpadapter

import (
	"context"
	"strings"

	"github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/selection-ledger/application/commands"
	"github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/selection-ledger/application/queries"
	"github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/selection-ledger/domain/entities"
	httptransport "github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/selection-ledger/transport/http"
)

type Handler struct {
	AddSelection    commands.AddSelectionUseCase
	RemoveSelection commands.RemoveSelectionUseCase
	ListSelections  queries.ListSelectionsUseCase
	FindSelection   queries.FindSelectionUseCase
}

// AddSelectionHandler godoc
// @Summary Add selection
// @Description The token email owns the selection when a token is sent; otherwise the body email is used.
// @Tags selections
// @Accept json
// @Produce json
// @Param request body httptransport.AddSelectionRequest true "Selection"
// @Success 200 {object} httptransport.InsertResultResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Router /selects [post]
func (h Handler) AddSelectionHandler(
	ctx context.Context,
	identityEmail string,
	req httptransport.AddSelectionRequest,
) (httptransport.InsertResultResponse, error) {
	email := strings.TrimSpace(identityEmail)
	if email == "" {
		email = req.Email
	}
	selectionID, err := h.AddSelection.Execute(ctx, commands.AddSelectionCommand{
		Email:          email,
		ClassID:        req.ClassID,
		Name:           req.Name,
		Image:          req.Image,
		Price:          req.Price,
		InstructorName: req.InstructorName,
		Seats:          req.Seats,
	})
	if err != nil {
		return httptransport.InsertResultResponse{}, err
	}
	return httptransport.InsertResultResponse{Acknowledged: true, InsertedID: selectionID}, nil
}

// ListSelectionsHandler godoc
// @Summary List own selections
// @Tags selections
// @Produce json
// @Security BearerAuth
// @Param email query string false "Owner email"
// @Success 200 {array} httptransport.SelectionDTO
// @Failure 403 {object} httptransport.ErrorResponse
// @Router /selects [get]
func (h Handler) ListSelectionsHandler(ctx context.Context, email string) ([]httptransport.SelectionDTO, error) {
	selections, err := h.ListSelections.Execute(ctx, email)
	if err != nil {
		return nil, err
	}
	items := make([]httptransport.SelectionDTO, 0, len(selections))
	for _, selection := range selections {
		items = append(items, toSelectionDTO(selection))
	}
	return items, nil
}

// FindSelectionHandler godoc
// @Summary Get selection
// @Tags selections
// @Produce json
// @Param id path string true "Selection id"
// @Success 200 {object} httptransport.SelectionDTO
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /selects/{id} [get]
func (h Handler) FindSelectionHandler(ctx context.Context, selectionID string) (httptransport.SelectionDTO, error) {
	selection, err := h.FindSelection.Execute(ctx, selectionID)
	if err != nil {
		return httptransport.SelectionDTO{}, err
	}
	return toSelectionDTO(selection), nil
}

// RemoveSelectionHandler godoc
// @Summary Remove selection
// @Tags selections
// @Produce json
// @Param id path string true "Selection id"
// @Success 200 {object} httptransport.DeleteResultResponse
// @Router /selects/{id} [delete]
func (h Handler) RemoveSelectionHandler(ctx context.Context, selectionID string) (httptransport.DeleteResultResponse, error) {
	removed, err := h.RemoveSelection.Execute(ctx, selectionID)
	if err != nil {
		return httptransport.DeleteResultResponse{}, err
	}
	return httptransport.DeleteResultResponse{Acknowledged: true, DeletedCount: removed}, nil
}

func toSelectionDTO(selection entities.Selection) httptransport.SelectionDTO {
	return httptransport.SelectionDTO{
		ID:             selection.ID,
		Email:          selection.Email,
		ClassID:        selection.ClassID,
		Name:           selection.Name,
		Image:          selection.Image,
		Price:          selection.Price,
		InstructorName: selection.InstructorName,
		Seats:          selection.Seats,
	}
}
