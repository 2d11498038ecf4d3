package models

// Product is one row of the product catalogue. The catalogue is bulk-loaded
// out of band and treated as read-only by the reconciliation pipeline.
type Product struct {
	ID       string `json:"product_id"`
	Name     string `json:"product_name"`
	Category string `json:"category"`
	VendorID string `json:"vendor_id"`
	Stock    int    `json:"stock"`
}

// Vendor is a supplier contact record referenced by Product.VendorID.
type Vendor struct {
	ID       string `json:"vendor_id"`
	Name     string `json:"vendor_name"`
	Location string `json:"location"`
	Email    string `json:"email"`
	Contact  string `json:"contact"`
}
