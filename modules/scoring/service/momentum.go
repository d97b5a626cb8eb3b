package service

import (
	"math"
	"time"
)

// MomentumDecayRate is the per-day exponential decay constant (spec §4.3:
// "decays to ≈0.55 at 30 days, ≈0.17 at 90 days").
const MomentumDecayRate = 0.02

// UnknownMomentum is used when a profile's last_active_at is nil.
const UnknownMomentum = 0.5

// momentum implements Momentum(B) = exp(-0.02 * max(0, days_since_active)),
// or 0.5 if unknown (spec §4.3).
func momentum(lastActiveAt *time.Time, now time.Time) float64 {
	if lastActiveAt == nil {
		return UnknownMomentum
	}
	days := now.Sub(*lastActiveAt).Hours() / 24
	if days < 0 {
		days = 0
	}
	return clamp01(math.Exp(-MomentumDecayRate * days))
}
