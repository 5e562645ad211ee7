// Package delivery models the shipping options offered to a buyer and the
// zone classification of a seller/buyer route.
package delivery
