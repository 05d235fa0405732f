package entities

// Selection is a user's unpaid pick of a class, with the class details
// copied at selection time.
type Selection struct {
	ID             string
	Email          string
	ClassID        string
	Name           string
	Image          string
	Price          float64
	InstructorName string
	Seats          int64
}
