package authz

// Filtered is one surviving candidate with its redaction instructions.
type Filtered struct {
	Resource Resource `json:"resource"`
	Redact   []string `json:"redact,omitempty"`
}

// Filter narrows a candidate list to what the subject may see. It is the
// only sanctioned path by which alert feeds, document listings, chat context,
// and export payloads reach a response. Denied candidates are dropped, the
// relative order of survivors is preserved, and each survivor carries the
// field names its consumer must strip.
func Filter(c *Catalog, sub Subject, candidates []Resource) []Filtered {
	out := make([]Filtered, 0, len(candidates))
	for _, res := range candidates {
		d := Evaluate(c, sub, res)
		if !d.Allowed {
			continue
		}
		out = append(out, Filtered{Resource: res, Redact: d.Redact})
	}
	return out
}

// ScopeForAlertCategory maps an alert category to the data-access scope
// needed to see it. Unknown categories fall back to financial, the most
// restrictive tier.
func ScopeForAlertCategory(category string) Scope {
	switch category {
	case "deployment", "delay", "schedule":
		return ScopeOperational
	case "compliance", "safety":
		return ScopeSafety
	case "analytics":
		return ScopeStrategic
	case "quality", "technical":
		return ScopeTechnical
	case "budget", "financial":
		return ScopeFinancial
	default:
		return ScopeFinancial
	}
}
