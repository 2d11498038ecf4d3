package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewToolDefinition(t *testing.T) {
	def := NewToolDefinition(
		"lookup_vendor",
		"Look up a vendor",
		map[string]ParameterProperty{
			"vendor_id": {Type: "string", Description: "The vendor id"},
			"mode":      {Type: "string", Enum: []string{"fast", "full"}},
		},
		[]string{"vendor_id"},
	)

	assert.Equal(t, "lookup_vendor", def.Name)
	assert.Equal(t, "object", def.Parameters["type"])
	assert.Equal(t, []string{"vendor_id"}, def.Parameters["required"])

	props, ok := def.Parameters["properties"].(map[string]any)
	require.True(t, ok)

	vendorID, ok := props["vendor_id"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "string", vendorID["type"])
	assert.Equal(t, "The vendor id", vendorID["description"])

	mode, ok := props["mode"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, []string{"fast", "full"}, mode["enum"])
}

func TestGetInventoryAgentTools(t *testing.T) {
	tools := GetInventoryAgentTools()
	require.Len(t, tools, 3)

	names := make(map[string]ToolDefinition, len(tools))
	for _, tool := range tools {
		names[tool.Name] = tool
	}

	require.Contains(t, names, "analyze_stock")
	require.Contains(t, names, "lookup_vendor")
	require.Contains(t, names, "send_purchase_order")

	assert.Equal(t, []string{"product_name", "category", "demand"},
		names["analyze_stock"].Parameters["required"])
	assert.Equal(t, []string{"vendor_id"},
		names["lookup_vendor"].Parameters["required"])
	assert.Equal(t, []string{"vendor_email", "vendor_name", "product_name", "quantity"},
		names["send_purchase_order"].Parameters["required"])
}
