package httptransport

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

type ClassDTO struct {
	ID              string  `json:"_id"`
	Name            string  `json:"name"`
	Image           string  `json:"image,omitempty"`
	Price           float64 `json:"price"`
	Seats           int64   `json:"seats"`
	EnrollStudent   int64   `json:"enrollStudent"`
	InstructorName  string  `json:"instructorName,omitempty"`
	InstructorEmail string  `json:"instructorEmail,omitempty"`
	Status          string  `json:"status,omitempty"`
	Feedback        string  `json:"feedback,omitempty"`
}

// CreateClassRequest omits counters and status; the owner comes from the token.
type CreateClassRequest struct {
	Name           string  `json:"name"`
	Image          string  `json:"image"`
	Price          float64 `json:"price"`
	Seats          int64   `json:"seats"`
	InstructorName string  `json:"instructorName"`
}

type InsertResultResponse struct {
	Acknowledged bool   `json:"acknowledged"`
	InsertedID   string `json:"insertedId"`
}

type UpdateClassRequest struct {
	Name  *string  `json:"name,omitempty"`
	Price *float64 `json:"price,omitempty"`
	Seats *int64   `json:"seats,omitempty"`
}

type SetClassStatusRequest struct {
	Status string `json:"status"`
}

type SetClassFeedbackRequest struct {
	Feedback string `json:"feedback"`
}

type UpdateResultResponse struct {
	Acknowledged  bool   `json:"acknowledged"`
	MatchedCount  int64  `json:"matchedCount"`
	ModifiedCount int64  `json:"modifiedCount"`
	UpsertedCount int64  `json:"upsertedCount"`
	UpsertedID    string `json:"upsertedId,omitempty"`
}

type InstructorDTO struct {
	ID              string `json:"_id"`
	Name            string `json:"name,omitempty"`
	Email           string `json:"email,omitempty"`
	Photo           string `json:"photo,omitempty"`
	NumberOfClasses int64  `json:"numberOfClasses"`
}
