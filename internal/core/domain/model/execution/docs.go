// Package execution models execution items: the immutable record of one unit of
// service actually delivered against an order's entitlement.
//
// Creating an item is the only event that advances an entitlement's completed
// quantity. Items are never updated; they disappear only when their whole order is
// deleted.
package execution
