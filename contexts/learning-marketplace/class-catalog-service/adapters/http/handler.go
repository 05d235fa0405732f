package httpadapter

import (
	"context"
	"log/slog"

	"github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/class-catalog-service/application/commands"
	"github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/class-catalog-service/application/queries"
	"github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/class-catalog-service/domain/entities"
	"github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/class-catalog-service/ports"
	httptransport "github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/class-catalog-service/transport/http"
)

type Handler struct {
	CreateClass      commands.CreateClassUseCase
	UpdateClass      commands.UpdateClassUseCase
	SetClassStatus   commands.SetClassStatusUseCase
	SetClassFeedback commands.SetClassFeedbackUseCase
	ListTopClasses   queries.ListApprovedTopClassesUseCase
	ListClasses      queries.ListAllClassesUseCase
	GetClass         queries.GetClassUseCase
	ListInstructors  queries.ListInstructorsUseCase
	Logger           *slog.Logger
}

// CreateClassHandler godoc
// @Summary Create class
// @Description Instructors submit classes for review; new classes start pending.
// @Tags classes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body httptransport.CreateClassRequest true "Class"
// @Success 200 {object} httptransport.InsertResultResponse
// @Failure 401 {object} httptransport.ErrorResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Router /addClass [post]
func (h Handler) CreateClassHandler(
	ctx context.Context,
	instructorEmail string,
	req httptransport.CreateClassRequest,
) (httptransport.InsertResultResponse, error) {
	classID, err := h.CreateClass.Execute(ctx, commands.CreateClassCommand{
		InstructorEmail: instructorEmail,
		InstructorName:  req.InstructorName,
		Name:            req.Name,
		Image:           req.Image,
		Price:           req.Price,
		Seats:           req.Seats,
	})
	if err != nil {
		return httptransport.InsertResultResponse{}, err
	}
	return httptransport.InsertResultResponse{Acknowledged: true, InsertedID: classID}, nil
}

// ListClassesHandler godoc
// @Summary List all classes
// @Tags classes
// @Produce json
// @Success 200 {array} httptransport.ClassDTO
// @Router /addClass [get]
func (h Handler) ListClassesHandler(ctx context.Context) ([]httptransport.ClassDTO, error) {
	classes, err := h.ListClasses.Execute(ctx)
	if err != nil {
		return nil, err
	}
	return toClassDTOs(classes), nil
}

// GetClassHandler godoc
// @Summary Get class
// @Tags classes
// @Produce json
// @Param id path string true "Class id"
// @Success 200 {object} httptransport.ClassDTO
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /addClass/{id} [get]
func (h Handler) GetClassHandler(ctx context.Context, classID string) (httptransport.ClassDTO, error) {
	class, err := h.GetClass.Execute(ctx, classID)
	if err != nil {
		return httptransport.ClassDTO{}, err
	}
	return toClassDTO(class), nil
}

// SetClassStatusHandler godoc
// @Summary Set class status
// @Tags classes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Class id"
// @Param request body httptransport.SetClassStatusRequest true "Status"
// @Success 200 {object} httptransport.UpdateResultResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Router /addClass/{id} [patch]
func (h Handler) SetClassStatusHandler(
	ctx context.Context,
	classID string,
	req httptransport.SetClassStatusRequest,
) (httptransport.UpdateResultResponse, error) {
	result, err := h.SetClassStatus.Execute(ctx, commands.SetClassStatusCommand{ClassID: classID, Status: req.Status})
	if err != nil {
		return httptransport.UpdateResultResponse{}, err
	}
	return toUpdateResultResponse(result), nil
}

// UpdateClassHandler godoc
// @Summary Update own class
// @Tags classes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Class id"
// @Param request body httptransport.UpdateClassRequest true "Fields"
// @Success 200 {object} httptransport.UpdateResultResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Router /updateMyClass/{id} [put]
func (h Handler) UpdateClassHandler(
	ctx context.Context,
	classID string,
	req httptransport.UpdateClassRequest,
) (httptransport.UpdateResultResponse, error) {
	result, err := h.UpdateClass.Execute(ctx, commands.UpdateClassCommand{
		ClassID: classID,
		Name:    req.Name,
		Price:   req.Price,
		Seats:   req.Seats,
	})
	if err != nil {
		return httptransport.UpdateResultResponse{}, err
	}
	return toUpdateResultResponse(result), nil
}

// SetClassFeedbackHandler godoc
// @Summary Leave admin feedback
// @Tags classes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Class id"
// @Param request body httptransport.SetClassFeedbackRequest true "Feedback"
// @Success 200 {object} httptransport.UpdateResultResponse
// @Router /addFeedback/{id} [put]
func (h Handler) SetClassFeedbackHandler(
	ctx context.Context,
	classID string,
	req httptransport.SetClassFeedbackRequest,
) (httptransport.UpdateResultResponse, error) {
	result, err := h.SetClassFeedback.Execute(ctx, commands.SetClassFeedbackCommand{ClassID: classID, Feedback: req.Feedback})
	if err != nil {
		return httptransport.UpdateResultResponse{}, err
	}
	return toUpdateResultResponse(result), nil
}

// ListTopClassesHandler godoc
// @Summary Top approved classes
// @Tags classes
// @Produce json
// @Param sortBy query string false "enrollStudent"
// @Param limit query int false "Maximum number of classes"
// @Success 200 {array} httptransport.ClassDTO
// @Router /topClass [get]
func (h Handler) ListTopClassesHandler(ctx context.Context, sortBy string, limit int) ([]httptransport.ClassDTO, error) {
	classes, err := h.ListTopClasses.Execute(ctx, queries.ListTopClassesQuery{SortBy: sortBy, Limit: limit})
	if err != nil {
		return nil, err
	}
	return toClassDTOs(classes), nil
}

// ListInstructorsHandler godoc
// @Summary List instructors
// @Tags classes
// @Produce json
// @Success 200 {array} httptransport.InstructorDTO
// @Router /instructors [get]
func (h Handler) ListInstructorsHandler(ctx context.Context) ([]httptransport.InstructorDTO, error) {
	instructors, err := h.ListInstructors.Execute(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]httptransport.InstructorDTO, 0, len(instructors))
	for _, instructor := range instructors {
		items = append(items, httptransport.InstructorDTO{
			ID:              instructor.ID,
			Name:            instructor.Name,
			Email:           instructor.Email,
			Photo:           instructor.Photo,
			NumberOfClasses: instructor.NumberOfClasses,
		})
	}
	return items, nil
}

func toClassDTOs(classes []entities.Class) []httptransport.ClassDTO {
	items := make([]httptransport.ClassDTO, 0, len(classes))
	for _, class := range classes {
		items = append(items, toClassDTO(class))
	}
	return items
}

func toClassDTO(class entities.Class) httptransport.ClassDTO {
	return httptransport.ClassDTO{
		ID:              class.ID,
		Name:            class.Name,
		Image:           class.Image,
		Price:           class.Price,
		Seats:           class.Seats,
		EnrollStudent:   class.EnrollStudent,
		InstructorName:  class.InstructorName,
		InstructorEmail: class.InstructorEmail,
		Status:          string(class.Status),
		Feedback:        class.Feedback,
	}
}

func toUpdateResultResponse(result ports.UpdateResult) httptransport.UpdateResultResponse {
	return httptransport.UpdateResultResponse{
		Acknowledged:  true,
		MatchedCount:  result.MatchedCount,
		ModifiedCount: result.ModifiedCount,
		UpsertedCount: result.UpsertedCount,
		UpsertedID:    result.UpsertedID,
	}
}
