// Package models contains GORM persistence models that map to database tables.
// Domain types carry no ORM tags; each model converts to and from its domain
// counterpart with ToDomain and FromDomain.
//
// Tables:
//   - invoices and invoice_items (invoice.go)
//   - item_catalog_entries (catalog.go)
//   - bill_sequences (sequence.go)
package models
