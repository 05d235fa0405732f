package httpserver

import (
	"errors"
	"net/http"
	"strings"

	authzentities "github.com/toma2023/fluent-academy-serverside/contexts/identity-access/authorization-service/domain/entities"
	authzerrors "github.com/toma2023/fluent-academy-serverside/contexts/identity-access/authorization-service/domain/errors"
	sessionerrors "github.com/toma2023/fluent-academy-serverside/contexts/identity-access/session-token-service/domain/errors"
	sessionhttp "github.com/toma2023/fluent-academy-serverside/contexts/identity-access/session-token-service/transport/http"
)

const (
	unauthorizedMessage = "Unauthorized Access"
	forbiddenMessage    = "forbidden message"
	internalMessage     = "internal server error"
)

// bearerToken reads "Authorization: Bearer <token>". present reports whether
// the header was sent at all.
func bearerToken(r *http.Request) (token string, present bool) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return "", false
	}
	scheme, value, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", true
	}
	return strings.TrimSpace(value), true
}

// requireIdentity verifies the bearer token and writes 401 when it is
// missing or invalid.
func (s *Server) requireIdentity(w http.ResponseWriter, r *http.Request) (sessionhttp.IdentityResponse, bool) {
	token, _ := bearerToken(r)
	identity, err := s.sessions.Handler.AuthenticateHandler(r.Context(), token)
	if err != nil {
		writeSessionDomainError(w, err)
		return sessionhttp.IdentityResponse{}, false
	}
	return identity, true
}

// optionalIdentity is like requireIdentity but treats a request without an
// Authorization header as anonymous. A header carrying a bad token is still
// rejected.
func (s *Server) optionalIdentity(w http.ResponseWriter, r *http.Request) (sessionhttp.IdentityResponse, bool) {
	if _, present := bearerToken(r); !present {
		return sessionhttp.IdentityResponse{}, true
	}
	return s.requireIdentity(w, r)
}

// requireRole verifies the token and then the stored role of its email.
func (s *Server) requireRole(w http.ResponseWriter, r *http.Request, role authzentities.Role) (sessionhttp.IdentityResponse, bool) {
	identity, ok := s.requireIdentity(w, r)
	if !ok {
		return sessionhttp.IdentityResponse{}, false
	}
	if err := s.authorization.Handler.RequireRoleHandler(r.Context(), identity.Email, role); err != nil {
		writeAuthorizationDomainError(w, err)
		return sessionhttp.IdentityResponse{}, false
	}
	return identity, true
}

// guardRole applies requireRole only when role guards are enforced.
func (s *Server) guardRole(w http.ResponseWriter, r *http.Request, role authzentities.Role) bool {
	if !s.enforceGuards {
		return true
	}
	_, ok := s.requireRole(w, r, role)
	return ok
}

func writeSessionDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, sessionerrors.ErrUnauthenticated):
		writeSessionError(w, http.StatusUnauthorized, unauthorizedMessage)
	case errors.Is(err, sessionerrors.ErrInvalidEmail):
		writeSessionError(w, http.StatusBadRequest, err.Error())
	default:
		writeSessionError(w, http.StatusInternalServerError, internalMessage)
	}
}

func writeSessionError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, sessionhttp.ErrorResponse{Error: true, Message: message})
}

func writeAuthorizationDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, authzerrors.ErrUnauthenticated):
		writeAuthorizationError(w, http.StatusUnauthorized, unauthorizedMessage)
	case errors.Is(err, authzerrors.ErrForbidden):
		writeAuthorizationError(w, http.StatusForbidden, forbiddenMessage)
	case errors.Is(err, authzerrors.ErrInvalidEmail),
		errors.Is(err, authzerrors.ErrInvalidUserID),
		errors.Is(err, authzerrors.ErrInvalidRole):
		writeAuthorizationError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, authzerrors.ErrUserNotFound):
		writeAuthorizationError(w, http.StatusNotFound, err.Error())
	default:
		writeAuthorizationError(w, http.StatusInternalServerError, internalMessage)
	}
}
