// Package classcatalog serves class listings and the class passthrough updates.
//
// Updates follow upsert-on-missing semantics: writing fields to an unknown
// class id creates that class. Seat and enrollment counters are never
// written here outside of initial creation.
package classcatalog
