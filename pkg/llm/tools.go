package llm

// ToolDefinition defines a tool that can be called by the LLM.
type ToolDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// ParameterProperty defines a parameter property in JSON Schema format.
type ParameterProperty struct {
	Type        string   `json:"type"`
	Description string   `json:"description,omitempty"`
	Enum        []string `json:"enum,omitempty"`
}

// NewToolDefinition creates a new tool definition with standard JSON Schema parameters.
func NewToolDefinition(name, description string, properties map[string]ParameterProperty, required []string) ToolDefinition {
	props := make(map[string]any)
	for k, v := range properties {
		props[k] = map[string]any{
			"type":        v.Type,
			"description": v.Description,
		}
		if len(v.Enum) > 0 {
			props[k].(map[string]any)["enum"] = v.Enum
		}
	}

	return ToolDefinition{
		Name:        name,
		Description: description,
		Parameters: map[string]any{
			"type":       "object",
			"properties": props,
			"required":   required,
		},
	}
}

// GetInventoryAgentTools returns the tool definitions for the inventory agent.
func GetInventoryAgentTools() []ToolDefinition {
	return []ToolDefinition{
		NewToolDefinition(
			"analyze_stock",
			"Compare demanded quantity against current stock for one product. Matches by product name and category first; the product id is only a fallback when the name match misses.",
			map[string]ParameterProperty{
				"product_name": {
					Type:        "string",
					Description: "The product name as given by the user",
				},
				"category": {
					Type:        "string",
					Description: "The product category",
				},
				"demand": {
					Type:        "integer",
					Description: "The demanded quantity",
				},
				"product_id": {
					Type:        "string",
					Description: "Optional product identifier, used only when the name and category do not match",
				},
			},
			[]string{"product_name", "category", "demand"},
		),
		NewToolDefinition(
			"lookup_vendor",
			"Look up a vendor by vendor id and return its name, email and location",
			map[string]ParameterProperty{
				"vendor_id": {
					Type:        "string",
					Description: "The vendor identifier, e.g. from a previous stock analysis",
				},
			},
			[]string{"vendor_id"},
		),
		NewToolDefinition(
			"send_purchase_order",
			"Email a purchase order to a vendor for a given product and quantity",
			map[string]ParameterProperty{
				"vendor_email": {
					Type:        "string",
					Description: "The vendor's email address",
				},
				"vendor_name": {
					Type:        "string",
					Description: "The vendor's display name",
				},
				"product_name": {
					Type:        "string",
					Description: "The product to order",
				},
				"product_id": {
					Type:        "string",
					Description: "Optional product identifier",
				},
				"quantity": {
					Type:        "integer",
					Description: "Units to order, normally the shortage from analyze_stock",
				},
			},
			[]string{"vendor_email", "vendor_name", "product_name", "quantity"},
		),
	}
}
