package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	authzentities "github.com/toma2023/fluent-academy-serverside/contexts/identity-access/authorization-service/domain/entities"
	catalogerrors "github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/class-catalog-service/domain/errors"
	cataloghttp "github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/class-catalog-service/transport/http"
)

const topClassesFailedMessage = "failed to load top classes"

func (s *Server) handleListInstructors(w http.ResponseWriter, r *http.Request) {
	resp, err := s.catalog.Handler.ListInstructorsHandler(r.Context())
	if err != nil {
		writeCatalogDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateClass(w http.ResponseWriter, r *http.Request) {
	identity, ok := s.requireRole(w, r, authzentities.RoleInstructor)
	if !ok {
		return
	}
	var req cataloghttp.CreateClassRequest
	if err := decodeJSON(r, &req); err != nil {
		writeCatalogError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}
	if req.InstructorName == "" {
		req.InstructorName = identity.Name
	}
	resp, err := s.catalog.Handler.CreateClassHandler(r.Context(), identity.Email, req)
	if err != nil {
		writeCatalogDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListClasses(w http.ResponseWriter, r *http.Request) {
	resp, err := s.catalog.Handler.ListClassesHandler(r.Context())
	if err != nil {
		writeCatalogDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetClass(w http.ResponseWriter, r *http.Request) {
	resp, err := s.catalog.Handler.GetClassHandler(r.Context(), r.PathValue("id"))
	if err != nil {
		writeCatalogDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSetClassStatus(w http.ResponseWriter, r *http.Request) {
	if !s.guardRole(w, r, authzentities.RoleAdmin) {
		return
	}
	var req cataloghttp.SetClassStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeCatalogError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}
	resp, err := s.catalog.Handler.SetClassStatusHandler(r.Context(), r.PathValue("id"), req)
	if err != nil {
		writeCatalogDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateClass(w http.ResponseWriter, r *http.Request) {
	if !s.guardRole(w, r, authzentities.RoleInstructor) {
		return
	}
	var req cataloghttp.UpdateClassRequest
	if err := decodeJSON(r, &req); err != nil {
		writeCatalogError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}
	resp, err := s.catalog.Handler.UpdateClassHandler(r.Context(), r.PathValue("id"), req)
	if err != nil {
		writeCatalogDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSetClassFeedback(w http.ResponseWriter, r *http.Request) {
	if !s.guardRole(w, r, authzentities.RoleAdmin) {
		return
	}
	var req cataloghttp.SetClassFeedbackRequest
	if err := decodeJSON(r, &req); err != nil {
		writeCatalogError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}
	resp, err := s.catalog.Handler.SetClassFeedbackHandler(r.Context(), r.PathValue("id"), req)
	if err != nil {
		writeCatalogDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleTopClasses(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	limit := 0
	if raw := query.Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeCatalogError(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		limit = parsed
	}

	resp, err := s.catalog.Handler.ListTopClassesHandler(r.Context(), query.Get("sortBy"), limit)
	if err != nil {
		if errors.Is(err, catalogerrors.ErrInvalidListQuery) {
			writeCatalogDomainError(w, err)
			return
		}
		s.logger.Error("top classes query failed",
			"event", "http_top_classes_failed",
			"module", "internal/platform/httpserver",
			"layer", "transport",
			"error", err.Error(),
		)
		writePlainError(w, http.StatusInternalServerError, topClassesFailedMessage)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeCatalogDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, catalogerrors.ErrClassNotFound):
		writeCatalogError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, catalogerrors.ErrInvalidClassID),
		errors.Is(err, catalogerrors.ErrInvalidClass),
		errors.Is(err, catalogerrors.ErrInvalidClassStatus),
		errors.Is(err, catalogerrors.ErrInvalidClassUpdate),
		errors.Is(err, catalogerrors.ErrInvalidListQuery),
		errors.Is(err, catalogerrors.ErrInvalidInstructorID):
		writeCatalogError(w, http.StatusBadRequest, err.Error())
	default:
		writeCatalogError(w, http.StatusInternalServerError, internalMessage)
	}
}

func writeCatalogError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, cataloghttp.ErrorResponse{Error: true, Message: message})
}
