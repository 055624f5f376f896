package timeline

// Payload is the parameter snapshot a keyframe carries, e.g. a crop rectangle
// or a highlight ellipse. Field values are float64 for animatable parameters
// and string for stepped ones such as colors or effect identifiers. The
// engine never interprets field names, which keeps track, region and
// interpolation logic shape-agnostic.
type Payload map[string]any

// Clone returns an independent copy of the payload.
func (p Payload) Clone() Payload {
	if p == nil {
		return nil
	}
	out := make(Payload, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Equal reports whether two payloads carry the same fields and values.
// Numeric fields compare as float64 regardless of how the host supplied them.
func (p Payload) Equal(other Payload) bool {
	if len(p) != len(other) {
		return false
	}
	for k, v := range p {
		ov, ok := other[k]
		if !ok {
			return false
		}
		if n, isNum := asNumber(v); isNum {
			on, otherIsNum := asNumber(ov)
			if !otherIsNum || n != on {
				return false
			}
			continue
		}
		if v != ov {
			return false
		}
	}
	return true
}

// asNumber normalizes the numeric representations a host may hand in.
func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
