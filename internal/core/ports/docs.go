// Package ports defines the contracts between the checkout core and its
// adapters: persistence, address sources, remote functions, the courier
// aggregator, the payment gateway and session storage.
package ports
