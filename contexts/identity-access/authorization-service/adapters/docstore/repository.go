package docstoreadapter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/toma2023/fluent-academy-serverside/contexts/identity-access/authorization-service/domain/entities"
	domainerrors "github.com/toma2023/fluent-academy-serverside/contexts/identity-access/authorization-service/domain/errors"
	"github.com/toma2023/fluent-academy-serverside/contexts/identity-access/authorization-service/ports"
	"github.com/toma2023/fluent-academy-serverside/internal/platform/docstore"
)

type userDocument struct {
	ID    string `json:"_id,omitempty" bson:"_id,omitempty"`
	Name  string `json:"name,omitempty" bson:"name,omitempty"`
	Email string `json:"email" bson:"email"`
	Photo string `json:"photo,omitempty" bson:"photo,omitempty"`
	Role  string `json:"role,omitempty" bson:"role,omitempty"`
}

func (d userDocument) toEntity() entities.User {
	return entities.User{
		ID:    d.ID,
		Name:  d.Name,
		Email: d.Email,
		Photo: d.Photo,
		Role:  entities.ParseRole(d.Role),
	}
}

func fromEntity(user entities.User) userDocument {
	doc := userDocument{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Photo: user.Photo,
	}
	// A missing role field is how "none" is stored.
	if user.Role != entities.RoleNone {
		doc.Role = string(user.Role)
	}
	return doc
}

// Repository implements ports.UserRepository over the users collection.
type Repository struct {
	users  docstore.Collection
	logger *slog.Logger
}

func NewRepository(store docstore.Store, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		users:  store.Collection(docstore.CollectionUsers),
		logger: logger,
	}
}

func (r *Repository) FindUserByEmail(ctx context.Context, email string) (entities.User, error) {
	var doc userDocument
	err := r.users.FindOne(ctx, docstore.Filter{"email": email}, &doc)
	if errors.Is(err, docstore.ErrNotFound) {
		return entities.User{}, domainerrors.ErrUserNotFound
	}
	if err != nil {
		return entities.User{}, fmt.Errorf("find user by email: %w", err)
	}
	return doc.toEntity(), nil
}

func (r *Repository) CreateUserIfAbsent(ctx context.Context, user entities.User) (string, bool, error) {
	result, inserted, err := r.users.InsertIfAbsent(ctx, docstore.Filter{"email": user.Email}, fromEntity(user))
	if err != nil {
		if errors.Is(err, docstore.ErrDuplicateKey) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("create user: %w", err)
	}
	return result.InsertedID, inserted, nil
}

func (r *Repository) SetUserRole(ctx context.Context, userID string, role entities.Role) (ports.UpdateResult, error) {
	result, err := r.users.UpdateOne(ctx, docstore.Filter{docstore.IDField: userID}, map[string]any{
		"role": string(role),
	}, false)
	if err != nil {
		return ports.UpdateResult{}, fmt.Errorf("set user role: %w", err)
	}
	return ports.UpdateResult{
		MatchedCount:  result.MatchedCount,
		ModifiedCount: result.ModifiedCount,
		UpsertedCount: result.UpsertedCount,
		UpsertedID:    result.UpsertedID,
	}, nil
}

func (r *Repository) ListUsers(ctx context.Context) ([]entities.User, error) {
	var docs []userDocument
	if err := r.users.Find(ctx, docstore.Filter{}, docstore.FindOptions{}, &docs); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	users := make([]entities.User, 0, len(docs))
	for _, doc := range docs {
		users = append(users, doc.toEntity())
	}
	return users, nil
}
