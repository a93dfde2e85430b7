package transfer

type ProductCreation struct {
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	TargetAudience string   `json:"target_audience"`
	Platforms      []string `json:"platforms"`
	Price          float64  `json:"price"`
	Category       string   `json:"category"`
	Keywords       []string `json:"keywords"`
}

type ProductUpdate struct {
	Name           *string  `json:"name"`
	Description    *string  `json:"description"`
	TargetAudience *string  `json:"target_audience"`
	Platforms      []string `json:"platforms"`
	Price          *float64 `json:"price"`
	Category       *string  `json:"category"`
	Keywords       []string `json:"keywords"`
}
