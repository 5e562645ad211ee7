// Package services provides domain services that don't belong to a single
// aggregate.
//
// The package includes:
//   - ErrorClassifier: the only place that inspects raw error shapes. Every
//     failure shown to a buyer passes through it and comes out as a
//     fault.Classification.
package services
