package api

// KeyConvention names the three keys a dataset row may use for its bounds and frequency
type KeyConvention struct {
	Lower     string `json:"lower"`
	Upper     string `json:"upper"`
	Frequency string `json:"frequency"`
}

// NormalizerConfig holds configuration for request row normalization
type NormalizerConfig struct {
	// Conventions are tried in order; the first one whose keys are all present wins
	Conventions []KeyConvention `json:"conventions"`
	MaxRows     int             `json:"max_rows"` // 0 means unlimited
}

// DefaultNormalizerConfig accepts {l,u,f} rows first, then {lower,upper,frequency}
func DefaultNormalizerConfig() NormalizerConfig {
	return NormalizerConfig{
		Conventions: []KeyConvention{
			{Lower: "l", Upper: "u", Frequency: "f"},
			{Lower: "lower", Upper: "upper", Frequency: "frequency"},
		},
		MaxRows: 10000,
	}
}
