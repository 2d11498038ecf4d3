package services

import (
	"sort"

	"github.com/restockhq/reorder-engine/pkg/models"
)

// groupKey identifies one consolidated purchase request.
type groupKey struct {
	vendorID  string
	productID string
}

// GroupOrders consolidates shortage records into at most one OrderIntent
// per (vendor, product) pair, so a vendor is contacted once per product per
// run no matter how many aggregation keys resolved to that pair. Demand and
// shortage are summed across merged records; CurrentStock keeps the minimum
// observed value (informational only). Name and category carry over from
// the first record of each group. Unmatched records all have an empty
// vendor id, so they collapse per product under the empty vendor.
//
// Output is sorted by vendor then product id for stable reports.
func GroupOrders(records []models.ShortageRecord) []models.OrderIntent {
	grouped := make(map[groupKey]*models.OrderIntent)

	for _, rec := range records {
		key := groupKey{vendorID: rec.VendorID, productID: rec.ProductID}

		intent, ok := grouped[key]
		if !ok {
			grouped[key] = &models.OrderIntent{
				VendorID:     rec.VendorID,
				ProductID:    rec.ProductID,
				Name:         rec.Name,
				Category:     rec.Category,
				CurrentStock: rec.CurrentStock,
				Demand:       rec.Demand,
				Shortage:     rec.Shortage,
			}
			continue
		}

		intent.Demand += rec.Demand
		intent.Shortage += rec.Shortage
		if rec.CurrentStock < intent.CurrentStock {
			intent.CurrentStock = rec.CurrentStock
		}
	}

	intents := make([]models.OrderIntent, 0, len(grouped))
	for _, intent := range grouped {
		intents = append(intents, *intent)
	}

	sort.Slice(intents, func(i, j int) bool {
		if intents[i].VendorID != intents[j].VendorID {
			return intents[i].VendorID < intents[j].VendorID
		}
		return intents[i].ProductID < intents[j].ProductID
	})

	return intents
}

// SummarizeCategories compares total uploaded demand against total
// catalogue stock per normalized category. Display names keep the raw
// spelling of the earliest uploaded row per category (by Seq, so the
// choice does not depend on map iteration order), preferring demand-side
// spellings over catalogue ones.
func SummarizeCategories(agg map[models.AggregationKey]*models.AggregatedDemand, products []models.Product) []models.CategorySummary {
	demandByCat := make(map[string]int)
	stockByCat := make(map[string]int)
	display := make(map[string]string)
	displaySeq := make(map[string]int)

	for _, info := range agg {
		k := models.Normalize(info.Category)
		demandByCat[k] += info.TotalDemand
		if info.Category == "" {
			continue
		}
		if cur, ok := displaySeq[k]; !ok || info.Seq < cur {
			display[k] = info.Category
			displaySeq[k] = info.Seq
		}
	}
	for _, p := range products {
		k := models.Normalize(p.Category)
		stockByCat[k] += p.Stock
		if _, ok := display[k]; !ok && p.Category != "" {
			display[k] = p.Category
		}
	}

	keys := make([]string, 0, len(demandByCat)+len(stockByCat))
	seen := make(map[string]bool)
	for k := range demandByCat {
		if !seen[k] {
			keys = append(keys, k)
			seen[k] = true
		}
	}
	for k := range stockByCat {
		if !seen[k] {
			keys = append(keys, k)
			seen[k] = true
		}
	}
	sort.Strings(keys)

	summary := make([]models.CategorySummary, 0, len(keys))
	for _, k := range keys {
		d := demandByCat[k]
		s := stockByCat[k]
		shortage := d - s
		if shortage < 0 {
			shortage = 0
		}
		name := display[k]
		if name == "" {
			name = k
		}
		summary = append(summary, models.CategorySummary{
			Category:    name,
			TotalDemand: d,
			TotalStock:  s,
			Shortage:    shortage,
		})
	}

	return summary
}
