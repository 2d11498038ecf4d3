package services

import (
	"github.com/restockhq/reorder-engine/pkg/models"
)

// AggregateDemand merges raw demand rows into one AggregatedDemand per
// aggregation key, summing demand across all rows (and therefore across
// originating stores). The first row seen for a key supplies the display
// name and category; the representative product id is the first non-empty
// identifier, and later non-empty identifiers only fill the slot if it is
// still empty.
func AggregateDemand(rows []models.DemandRow) map[models.AggregationKey]*models.AggregatedDemand {
	agg := make(map[models.AggregationKey]*models.AggregatedDemand)

	for i, row := range rows {
		key := models.KeyFor(row.Name, row.Category)

		entry, ok := agg[key]
		if !ok {
			entry = &models.AggregatedDemand{
				Key:       key,
				Name:      row.Name,
				Category:  row.Category,
				ProductID: row.ProductID,
				Seq:       i,
			}
			agg[key] = entry
		}

		entry.TotalDemand += row.Demand

		if entry.ProductID == "" && row.ProductID != "" {
			entry.ProductID = row.ProductID
		}
	}

	return agg
}
