// Package queries contains the read side of the ledger.
//
// Query handlers read with raw SQL through *gorm.DB, rebuild the domain objects
// the consumption calculator and aggregate reporter need, and return plain read
// models. They take no locks and never fail for "no data": an empty ledger
// yields empty slices and zero totals.
package queries
