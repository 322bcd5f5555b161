// Package catalog holds the service catalog: the reference list of service types
// that orders entitle customers to. Entries are immutable once created.
package catalog
