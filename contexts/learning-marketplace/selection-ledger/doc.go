// Package selectionledger tracks the classes a user has picked but not paid for.
//
// Selections are snapshots taken at pick time. Duplicate picks of the same
// class are kept, and seat availability is only checked when payment settles.
package selectionledger
