// Package enrollment settles paid selections into class enrollments.
//
// Settlement runs in three stages. A payment intent is created with the
// provider, the client-confirmed payment is recorded and its selections are
// removed, and after the response is written an enrollment task adjusts the
// seat and enrollment counters of every purchased class. The stages are not
// wrapped in a transaction; a failure in a later stage is logged and the
// earlier writes stay.
package enrollment
