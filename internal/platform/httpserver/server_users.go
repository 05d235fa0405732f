package httpserver

import (
	"net/http"

	authzentities "github.com/toma2023/fluent-academy-serverside/contexts/identity-access/authorization-service/domain/entities"
	authzhttp "github.com/toma2023/fluent-academy-serverside/contexts/identity-access/authorization-service/transport/http"
	sessionhttp "github.com/toma2023/fluent-academy-serverside/contexts/identity-access/session-token-service/transport/http"
)

func (s *Server) handleIssueToken(w http.ResponseWriter, r *http.Request) {
	var req sessionhttp.IssueTokenRequest
	if err := decodeJSON(r, &req); err != nil {
		writeSessionError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}
	resp, err := s.sessions.Handler.IssueTokenHandler(r.Context(), req)
	if err != nil {
		writeSessionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRegisterUser(w http.ResponseWriter, r *http.Request) {
	var req authzhttp.RegisterUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeAuthorizationError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}
	resp, err := s.authorization.Handler.RegisterUserHandler(r.Context(), req)
	if err != nil {
		writeAuthorizationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireRole(w, r, authzentities.RoleAdmin); !ok {
		return
	}
	resp, err := s.authorization.Handler.ListUsersHandler(r.Context())
	if err != nil {
		writeAuthorizationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCheckAdmin(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireIdentity(w, r); !ok {
		return
	}
	resp, err := s.authorization.Handler.CheckAdminHandler(r.Context(), r.PathValue("email"))
	if err != nil {
		writeAuthorizationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCheckInstructor(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireIdentity(w, r); !ok {
		return
	}
	resp, err := s.authorization.Handler.CheckInstructorHandler(r.Context(), r.PathValue("email"))
	if err != nil {
		writeAuthorizationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMakeAdmin(w http.ResponseWriter, r *http.Request) {
	s.assignRole(w, r, authzentities.RoleAdmin)
}

func (s *Server) handleMakeInstructor(w http.ResponseWriter, r *http.Request) {
	s.assignRole(w, r, authzentities.RoleInstructor)
}

func (s *Server) assignRole(w http.ResponseWriter, r *http.Request, role authzentities.Role) {
	if !s.guardRole(w, r, authzentities.RoleAdmin) {
		return
	}
	resp, err := s.authorization.Handler.AssignRoleHandler(r.Context(), r.PathValue("id"), role)
	if err != nil {
		writeAuthorizationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeAuthorizationError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, authzhttp.ErrorResponse{Error: true, Message: message})
}
