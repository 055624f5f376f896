package timeline

// Evaluate returns the interpolated payload at queryFrame. At or before the
// first keyframe the first payload is returned unchanged, symmetrically at or
// after the last (clamp, no extrapolation). Between two keyframes each
// numeric field is interpolated with a local Catmull-Rom spline over up to
// two neighbours on each side, degrading to linear interpolation when no
// neighbours exist, so motion eases in and out at interior keyframes.
// Non-numeric fields step at the following keyframe's frame. With fewer than
// two keyframes the single payload, or fallback, is returned.
func Evaluate(keyframes []Keyframe, queryFrame int, fallback Payload) Payload {
	switch len(keyframes) {
	case 0:
		return fallback.Clone()
	case 1:
		return keyframes[0].Payload.Clone()
	}

	first := keyframes[0]
	last := keyframes[len(keyframes)-1]
	if queryFrame <= first.Frame {
		return first.Payload.Clone()
	}
	if queryFrame >= last.Frame {
		return last.Payload.Clone()
	}

	// Locate the segment containing queryFrame.
	seg := 0
	for i := 0; i < len(keyframes)-1; i++ {
		if queryFrame >= keyframes[i].Frame && queryFrame < keyframes[i+1].Frame {
			seg = i
			break
		}
	}

	from := keyframes[seg]
	to := keyframes[seg+1]
	span := to.Frame - from.Frame
	t := float64(queryFrame-from.Frame) / float64(span)

	out := make(Payload, len(from.Payload))
	for field, value := range from.Payload {
		v0, isNum := asNumber(value)
		if !isNum {
			// Stepped field: holds its value until the next keyframe.
			out[field] = value
			continue
		}
		v1, ok := asNumber(to.Payload[field])
		if !ok {
			// The field disappears or changes type at the next keyframe.
			out[field] = value
			continue
		}

		prev, hasPrev := neighbourValue(keyframes, seg-1, field)
		next, hasNext := neighbourValue(keyframes, seg+2, field)
		if !hasPrev && !hasNext {
			out[field] = lerp(v0, v1, t)
			continue
		}
		if !hasPrev {
			prev = v0
		}
		if !hasNext {
			next = v1
		}
		out[field] = catmullRom(prev, v0, v1, next, t)
	}
	return out
}

func neighbourValue(keyframes []Keyframe, i int, field string) (float64, bool) {
	if i < 0 || i >= len(keyframes) {
		return 0, false
	}
	return asNumber(keyframes[i].Payload[field])
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// catmullRom evaluates the cubic through p1..p2 with p0 and p3 as shaping
// neighbours, at parameter t in [0,1].
func catmullRom(p0, p1, p2, p3, t float64) float64 {
	t2 := t * t
	t3 := t2 * t
	return 0.5 * ((2 * p1) +
		(-p0+p2)*t +
		(2*p0-5*p1+4*p2-p3)*t2 +
		(-p0+3*p1-3*p2+p3)*t3)
}
