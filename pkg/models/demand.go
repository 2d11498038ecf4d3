package models

import (
	"strings"

	"github.com/google/uuid"
)

// DemandRow is one observation from an uploaded demand file. Rows are
// consumed transiently and never persisted. A malformed demand quantity is
// defaulted to zero by the ingest layer rather than rejecting the row.
type DemandRow struct {
	ProductID string `json:"product_id"`
	Name      string `json:"product_name"`
	Category  string `json:"category"`
	StoreID   string `json:"store_id"`
	Demand    int    `json:"demand"`
}

// AggregationKey identifies one logical product across raw demand rows:
// the (name, category) pair after trimming whitespace and case-folding.
type AggregationKey struct {
	Name     string
	Category string
}

// Normalize trims surrounding whitespace and lowercases s. This is the
// single normalization rule shared by demand aggregation and the catalogue
// index, so both sides of the join always agree on keys.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// KeyFor builds the aggregation key for a raw name/category pair.
func KeyFor(name, category string) AggregationKey {
	return AggregationKey{Name: Normalize(name), Category: Normalize(category)}
}

// AggregatedDemand is the merged demand for one aggregation key. Name and
// Category keep the raw spelling of the first row seen for display. The
// representative ProductID is the first non-empty identifier encountered;
// later non-empty identifiers only fill the slot if it is still empty.
type AggregatedDemand struct {
	Key         AggregationKey `json:"-"`
	Name        string         `json:"product_name"`
	Category    string         `json:"category"`
	ProductID   string         `json:"product_id"`
	TotalDemand int            `json:"total_demand"`

	// Seq is the index of the first row seen for this key, preserving
	// upload order for consumers that iterate the aggregation map.
	Seq int `json:"-"`
}

// Resolution status for a ShortageRecord.
const (
	StatusMatched   = "matched"
	StatusUnmatched = "unmatched"
)

// ShortageRecord is the result of joining one aggregated demand entry
// against the catalogue. Shortage is never negative. An unmatched record
// has zero stock, shortage equal to demand, and an empty vendor id.
type ShortageRecord struct {
	ProductID    string `json:"product_id"`
	Name         string `json:"product_name"`
	Category     string `json:"category"`
	CurrentStock int    `json:"current_stock"`
	Demand       int    `json:"demand"`
	Shortage     int    `json:"shortage"`
	Status       string `json:"status"`
	VendorID     string `json:"vendor_id"`
}

// OrderIntent is one consolidated purchase request per (vendor, product)
// pair per run. Demand and shortage are summed across merged records;
// CurrentStock carries the minimum observed value and is informational only.
type OrderIntent struct {
	VendorID     string `json:"vendor_id"`
	ProductID    string `json:"product_id"`
	Name         string `json:"product_name"`
	Category     string `json:"category"`
	CurrentStock int    `json:"current_stock"`
	Demand       int    `json:"demand"`
	Shortage     int    `json:"shortage"`
}

// Sentinel values used in DispatchResult when no vendor could be resolved.
const (
	NoVendorName  = "No vendor found"
	NoVendorEmail = "N/A"
	OutcomeSent   = "Sent"
)

// DispatchResult is the outcome of one purchase-order send attempt.
// Exactly one is produced per OrderIntent; sends are never retried within
// a run.
type DispatchResult struct {
	ProductID   string `json:"product_id"`
	Name        string `json:"product_name"`
	Shortage    int    `json:"shortage"`
	VendorName  string `json:"vendor"`
	VendorEmail string `json:"vendor_email"`
	Outcome     string `json:"outcome"`
}

// CategorySummary compares total demand from the uploaded file against total
// catalogue stock for one category.
type CategorySummary struct {
	Category    string `json:"category"`
	TotalDemand int    `json:"total_demand"`
	TotalStock  int    `json:"total_stock"`
	Shortage    int    `json:"shortage"`
}

// RunReport is the complete, inspectable result of one reconciliation run.
// DispatchResults is nil until intents have been dispatched.
type RunReport struct {
	RunID              uuid.UUID         `json:"run_id"`
	Matched            []ShortageRecord  `json:"matched"`
	Unmatched          []ShortageRecord  `json:"unmatched"`
	OrderIntents       []OrderIntent     `json:"order_intents"`
	DispatchResults    []DispatchResult  `json:"dispatch_results,omitempty"`
	CategorySummary    []CategorySummary `json:"category_summary"`
	TotalRowsProcessed int               `json:"total_rows_processed"`
}
