package entities

// SideEffectProfile lists the known side effects of one generic, most
// frequent first.
type SideEffectProfile struct {
	GenericName   string   `json:"generic_name"`
	SideEffects   []string `json:"side_effects"`
	CommonEffects string   `json:"common_effects,omitempty"`
}
