// Package queries contains the read operations of the checkout service.
// Order lookups run raw SQL through GORM and return flat read models; the
// cart size is answered from an in-memory view fed by cart change events.
package queries
