package httpserver

import (
	"errors"
	"net/http"
	"strings"

	selectionerrors "github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/selection-ledger/domain/errors"
	selectionhttp "github.com/toma2023/fluent-academy-serverside/contexts/learning-marketplace/selection-ledger/transport/http"
)

func (s *Server) handleAddSelection(w http.ResponseWriter, r *http.Request) {
	identity, ok := s.optionalIdentity(w, r)
	if !ok {
		return
	}
	var req selectionhttp.AddSelectionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeSelectionError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}
	resp, err := s.selections.Handler.AddSelectionHandler(r.Context(), identity.Email, req)
	if err != nil {
		writeSelectionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleListSelections only ever lists the caller's own selections. Without
// a token the list is empty; asking for another email is forbidden.
func (s *Server) handleListSelections(w http.ResponseWriter, r *http.Request) {
	identity, ok := s.optionalIdentity(w, r)
	if !ok {
		return
	}
	requested := strings.TrimSpace(r.URL.Query().Get("email"))
	if identity.Email == "" {
		writeJSON(w, http.StatusOK, []selectionhttp.SelectionDTO{})
		return
	}
	if requested != "" && !strings.EqualFold(requested, identity.Email) {
		writeSelectionError(w, http.StatusForbidden, forbiddenMessage)
		return
	}

	resp, err := s.selections.Handler.ListSelectionsHandler(r.Context(), identity.Email)
	if err != nil {
		writeSelectionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetSelection(w http.ResponseWriter, r *http.Request) {
	resp, err := s.selections.Handler.FindSelectionHandler(r.Context(), r.PathValue("id"))
	if err != nil {
		writeSelectionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRemoveSelection(w http.ResponseWriter, r *http.Request) {
	resp, err := s.selections.Handler.RemoveSelectionHandler(r.Context(), r.PathValue("id"))
	if err != nil {
		writeSelectionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeSelectionDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, selectionerrors.ErrSelectionNotFound):
		writeSelectionError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, selectionerrors.ErrInvalidSelection),
		errors.Is(err, selectionerrors.ErrInvalidEmail):
		writeSelectionError(w, http.StatusBadRequest, err.Error())
	default:
		writeSelectionError(w, http.StatusInternalServerError, internalMessage)
	}
}

func writeSelectionError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, selectionhttp.ErrorResponse{Error: true, Message: message})
}
