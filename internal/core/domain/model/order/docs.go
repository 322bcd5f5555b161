// Package order implements the Order aggregate and the status rules of the
// fulfillment engine.
//
// The package includes:
//   - Order: the aggregate root; owns its entitlements and its lifecycle status
//   - Entitlement: the purchased quantity of one catalog service under one order
//   - Status: the shared lifecycle vocabulary and the pure derivation rules
//
// Key business rules:
//   - An entitlement's completed quantity never exceeds its purchased quantity
//   - Entitlement status is derived from (purchased, completed), never set directly
//   - Order status is derived from the multiset of entitlement statuses:
//     all used -> used, all pending -> pending, anything else -> started
//   - An order without entitlements keeps its stored status
//   - Cancellation is an administrative transition, never derived
//
// Stored statuses are a cache of the derivation. RestoreOrder re-derives them from
// the stored counts, and Reconcile re-derives the counts from the item ledger.
// Both remember the loaded value, so a stale stored status is reported as a change
// and rewritten on the next update.
package order
