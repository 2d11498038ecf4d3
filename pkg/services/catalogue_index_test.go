package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/restockhq/reorder-engine/pkg/models"
)

func TestBuildCatalogueIndexLookups(t *testing.T) {
	idx := BuildCatalogueIndex([]models.Product{
		{ID: "P1", Name: "Widget", Category: "Tools", VendorID: "V1", Stock: 4},
		{ID: "P2", Name: "Gadget", Category: "Misc", VendorID: "V2", Stock: 9},
	})

	require.Equal(t, 2, idx.Size())

	p, ok := idx.LookupByKey(models.KeyFor(" WIDGET ", "tools"))
	require.True(t, ok)
	assert.Equal(t, "P1", p.ID)

	p, ok = idx.LookupByID(" P2 ")
	require.True(t, ok)
	assert.Equal(t, "Gadget", p.Name)

	_, ok = idx.LookupByKey(models.KeyFor("Sprocket", "Tools"))
	assert.False(t, ok)
}

func TestBuildCatalogueIndexCollisionLastWins(t *testing.T) {
	idx := BuildCatalogueIndex([]models.Product{
		{ID: "P1", Name: "Widget", Category: "Tools", VendorID: "V1", Stock: 4},
		{ID: "P9", Name: " widget ", Category: "TOOLS", VendorID: "V9", Stock: 1},
	})

	p, ok := idx.LookupByKey(models.KeyFor("Widget", "Tools"))
	require.True(t, ok)
	assert.Equal(t, "P9", p.ID)

	// Both rows remain reachable by identifier.
	_, ok = idx.LookupByID("P1")
	assert.True(t, ok)
	_, ok = idx.LookupByID("P9")
	assert.True(t, ok)
}
