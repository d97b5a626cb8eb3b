package service

// matchContext implements Context(A,B) = min(1.0, 0.25 * |events(A) ∩
// events(B)|) (spec §4.3). Symmetric by construction, so the same value is
// used for both directions of a pair.
func matchContext(sharedEventCount int) float64 {
	return clamp01(0.25 * float64(sharedEventCount))
}
