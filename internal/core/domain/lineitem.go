package domain

// LineItem is one row of an order draft: the extracted (or hand-edited)
// description plus its quantities. The JSON names match the wire format of
// the extraction and save collaborators exactly, including the spaces.
type LineItem struct {
	// RequestItem is the raw item description from extraction or editing.
	RequestItem string `json:"Request Item"`

	// Quantity is the ordered quantity. Non-negative by convention,
	// not enforced: collaborator output is trusted as-is.
	Quantity float64 `json:"Quantity"`

	// UnitPrice is the currency-agnostic per-unit price.
	UnitPrice float64 `json:"Unit Price"`

	// TotalAmount is the row total. It is independently editable and is
	// NOT derived from Quantity * UnitPrice.
	TotalAmount float64 `json:"Total Amount"`
}

// FinalizedItem is a reconciled row as sent to the final save collaborator
// and serialized into the export artifact.
type FinalizedItem struct {
	RequestItem string  `json:"Request Item"`
	MatchItem   string  `json:"Match Item"`
	Quantity    float64 `json:"Quantity"`
	UnitPrice   float64 `json:"Unit Price"`
	TotalAmount float64 `json:"Total Amount"`
}
