package httptransport

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

type RegisterUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Photo string `json:"photo"`
}

// RegisterUserResponse carries either the insert outcome or the
// "user already exists" message.
type RegisterUserResponse struct {
	Message      string `json:"message,omitempty"`
	Acknowledged bool   `json:"acknowledged,omitempty"`
	InsertedID   string `json:"insertedId,omitempty"`
}

type UpdateResultResponse struct {
	Acknowledged  bool   `json:"acknowledged"`
	MatchedCount  int64  `json:"matchedCount"`
	ModifiedCount int64  `json:"modifiedCount"`
	UpsertedCount int64  `json:"upsertedCount"`
	UpsertedID    string `json:"upsertedId,omitempty"`
}

type AdminCheckResponse struct {
	Admin bool `json:"admin"`
}

type InstructorCheckResponse struct {
	Instructor bool `json:"instructor"`
}

type UserDTO struct {
	ID    string `json:"_id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
	Photo string `json:"photo,omitempty"`
	Role  string `json:"role,omitempty"`
}
