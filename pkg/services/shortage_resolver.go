package services

import (
	"sort"
	"strings"

	"github.com/restockhq/reorder-engine/pkg/models"
)

// Resolution is the outcome of joining aggregated demand against the
// catalogue index: every key classified as matched or unmatched, plus the
// subset of records that should generate orders.
type Resolution struct {
	Matched   []models.ShortageRecord
	Unmatched []models.ShortageRecord

	// OrderCandidates holds matched records with a positive shortage plus
	// every unmatched record (unmatched demand always needs correction even
	// though its vendor is unknown).
	OrderCandidates []models.ShortageRecord
}

// ResolveShortages joins aggregated demand against the catalogue. Matching
// precedence: the (name, category) key is authoritative; the representative
// product id is a fallback only, tried when the key lookup fails and the id
// is non-empty after trimming. This keeps logically identical names that
// arrived with divergent upstream identifiers consolidated on one catalogue
// row.
//
// A matched record with zero shortage still lands in Matched; it just
// produces no order. Output is sorted by product id then name so reports
// are stable across runs.
func ResolveShortages(agg map[models.AggregationKey]*models.AggregatedDemand, idx *CatalogueIndex) Resolution {
	var res Resolution

	for key, info := range agg {
		entry, found := idx.LookupByKey(key)
		if !found && strings.TrimSpace(info.ProductID) != "" {
			entry, found = idx.LookupByID(info.ProductID)
		}

		if !found {
			rec := models.ShortageRecord{
				ProductID:    info.ProductID,
				Name:         info.Name,
				Category:     info.Category,
				CurrentStock: 0,
				Demand:       info.TotalDemand,
				Shortage:     info.TotalDemand,
				Status:       models.StatusUnmatched,
				VendorID:     "",
			}
			res.Unmatched = append(res.Unmatched, rec)
			res.OrderCandidates = append(res.OrderCandidates, rec)
			continue
		}

		shortage := info.TotalDemand - entry.Stock
		if shortage < 0 {
			shortage = 0
		}

		rec := models.ShortageRecord{
			ProductID:    fallback(info.ProductID, entry.ID),
			Name:         fallback(info.Name, entry.Name),
			Category:     fallback(info.Category, entry.Category),
			CurrentStock: entry.Stock,
			Demand:       info.TotalDemand,
			Shortage:     shortage,
			Status:       models.StatusMatched,
			VendorID:     entry.VendorID,
		}
		res.Matched = append(res.Matched, rec)
		if shortage > 0 {
			res.OrderCandidates = append(res.OrderCandidates, rec)
		}
	}

	sortRecords(res.Matched)
	sortRecords(res.Unmatched)
	sortRecords(res.OrderCandidates)

	return res
}

// fallback prefers the demand-side value, falling back to the catalogue
// value when the upload left the field blank.
func fallback(fromDemand, fromCatalogue string) string {
	if fromDemand != "" {
		return fromDemand
	}
	return fromCatalogue
}

func sortRecords(recs []models.ShortageRecord) {
	sort.Slice(recs, func(i, j int) bool {
		if recs[i].ProductID != recs[j].ProductID {
			return recs[i].ProductID < recs[j].ProductID
		}
		return recs[i].Name < recs[j].Name
	})
}
