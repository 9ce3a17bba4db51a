package types

// Confidence is the gating level a resolution must reach before it may be written
type Confidence string

// Confidence levels. High is a unique deterministic match, medium is the safe
// self-identification fallback, low permits no action.
const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// NoOption marks a resolution that does not select an option
const NoOption = -1

// Resolution is the outcome of resolving one field.
//
// Text resolutions carry Value, option resolutions (radio, select, radio-equivalent
// checkbox) carry Index, standard checkbox resolutions carry Check. An unresolved
// field always has ConfidenceLow and a Reason.
type Resolution struct {
	Value      string     `json:"value,omitempty"`
	Index      int        `json:"index"`
	Check      bool       `json:"check,omitempty"`
	Confidence Confidence `json:"confidence"`
	MatchedKey string     `json:"matched_key,omitempty"`
	Reason     string     `json:"reason,omitempty"`
}

// Unresolved returns a low-confidence resolution carrying only a reason code
func Unresolved(reason string) Resolution {
	return Resolution{Index: NoOption, Confidence: ConfidenceLow, Reason: reason}
}

// ValueResolution returns a text resolution
func ValueResolution(value string, confidence Confidence, key string) Resolution {
	return Resolution{Value: value, Index: NoOption, Confidence: confidence, MatchedKey: key}
}

// IndexResolution returns an option resolution
func IndexResolution(index int, confidence Confidence, key string) Resolution {
	return Resolution{Index: index, Confidence: confidence, MatchedKey: key}
}

// CheckResolution returns a standard checkbox resolution
func CheckResolution(check bool, key string) Resolution {
	return Resolution{Index: NoOption, Check: check, Confidence: ConfidenceHigh, MatchedKey: key}
}

// Resolved reports whether the resolver produced an answer at all
func (r Resolution) Resolved() bool {
	return r.Confidence != ConfidenceLow && r.Confidence != ""
}
