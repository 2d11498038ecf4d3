// Package services implements the demand-reconciliation pipeline and the
// single-product operations exposed to the HTTP API, the MCP tools, and the
// agent.
package services

import (
	"strings"

	"github.com/restockhq/reorder-engine/pkg/models"
)

// CatalogueIndex provides fast lookups over a catalogue snapshot: by
// normalized (name, category) pair and by product identifier. It is rebuilt
// from scratch for every reconciliation run and never mutated afterwards.
//
// When two catalogue rows normalize to the same name/category the later row
// wins. That is the matching source's responsibility to avoid, not
// something the index corrects.
type CatalogueIndex struct {
	byNameCategory map[models.AggregationKey]models.Product
	byID           map[string]models.Product
}

// BuildCatalogueIndex indexes a catalogue snapshot.
func BuildCatalogueIndex(products []models.Product) *CatalogueIndex {
	idx := &CatalogueIndex{
		byNameCategory: make(map[models.AggregationKey]models.Product, len(products)),
		byID:           make(map[string]models.Product, len(products)),
	}
	for _, p := range products {
		idx.byNameCategory[models.KeyFor(p.Name, p.Category)] = p
		idx.byID[strings.TrimSpace(p.ID)] = p
	}
	return idx
}

// LookupByKey finds a product by its aggregation key.
func (idx *CatalogueIndex) LookupByKey(key models.AggregationKey) (models.Product, bool) {
	p, ok := idx.byNameCategory[key]
	return p, ok
}

// LookupByID finds a product by trimmed identifier.
func (idx *CatalogueIndex) LookupByID(id string) (models.Product, bool) {
	p, ok := idx.byID[strings.TrimSpace(id)]
	return p, ok
}

// Size returns the number of indexed catalogue rows.
func (idx *CatalogueIndex) Size() int {
	return len(idx.byID)
}
