package httptransport

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

type AddSelectionRequest struct {
	Email          string  `json:"email"`
	ClassID        string  `json:"classId"`
	Name           string  `json:"name"`
	Image          string  `json:"image"`
	Price          float64 `json:"price"`
	InstructorName string  `json:"instructorName"`
	Seats          int64   `json:"seats"`
}

type InsertResultResponse struct {
	Acknowledged bool   `json:"acknowledged"`
	InsertedID   string `json:"insertedId"`
}

type DeleteResultResponse struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

type SelectionDTO struct {
	ID             string  `json:"_id"`
	Email          string  `json:"email"`
	ClassID        string  `json:"classId"`
	Name           string  `json:"name,omitempty"`
	Image          string  `json:"image,omitempty"`
	Price          float64 `json:"price"`
	InstructorName string  `json:"instructorName,omitempty"`
	Seats          int64   `json:"seats"`
}
