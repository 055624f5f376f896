package timeline

// Origin identifies how a keyframe came to exist and what may remove it.
type Origin string

const (
	// OriginPermanent marks a boundary keyframe at a track's logical start or
	// end. Permanent keyframes can never be deleted by direct user action.
	OriginPermanent Origin = "permanent"

	// OriginUser marks a keyframe the editor placed explicitly. User
	// keyframes are freely added and removed.
	OriginUser Origin = "user"

	// OriginTrim marks a synthetic keyframe inserted during a trim operation
	// to preserve visual continuity at the new edges. Trim keyframes are
	// removed as a batch by CleanupTrim, never by ordinary deletion.
	OriginTrim Origin = "trim"
)

// Keyframe is a frame plus a payload, marking an explicit value the
// interpolator must reproduce exactly at that frame.
type Keyframe struct {
	Frame   int
	Origin  Origin
	Payload Payload
}
