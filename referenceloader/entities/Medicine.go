package entities

// Medicine is one catalog entry. SearchText is derived once at load time
// and is never mutated afterwards.
type Medicine struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	DisplayName  string  `json:"display_name"`
	GenericName  string  `json:"generic_name"`
	Composition  string  `json:"composition"`
	Manufacturer string  `json:"manufacturer"`
	Price        float64 `json:"price"`
	Category     string  `json:"category"`
	PackSize     string  `json:"pack_size,omitempty"`
	Discontinued bool    `json:"is_discontinued"`
	SearchText   string  `json:"-"`
}
