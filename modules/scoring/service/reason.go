package service

import (
	"fmt"
	"strings"

	scoringModel "github.com/jvmatch/partnermatch/modules/scoring/model"
)

// buildReason concatenates the present clauses with ". " (spec §4.3):
// (i) the strongest need/offer pair if Intent fired; (ii) a niche-fit
// clause keyed off niche_score; (iii) an activity clause; (iv) a
// shared-event clause; (v) a verified-intent badge if the target is
// Platinum.
func buildReason(dir *scoringModel.DirectionalResult, targetIsPlatinum bool) string {
	var clauses []string

	if dir.Intent == 1 && dir.IntentMatch != nil {
		clauses = append(clauses, fmt.Sprintf("You need %s and they offer %s", dir.IntentMatch.Need, dir.IntentMatch.Offer))
	}

	if clause := nicheClause(dir.NicheScore); clause != "" {
		clauses = append(clauses, clause)
	}

	switch {
	case dir.Momentum > 0.8:
		clauses = append(clauses, "Very active recently")
	case dir.Momentum < 0.3:
		clauses = append(clauses, "Less active")
	}

	if dir.Context > 0 {
		clauses = append(clauses, fmt.Sprintf("Attended %d shared event(s)", dir.SharedEventCount))
	}

	if targetIsPlatinum {
		clauses = append(clauses, "✅ Verified intent")
	}

	return strings.Join(clauses, ". ")
}

// nicheClause maps a niche_score value to one of the three named reason
// phrases the spec defines (§4.3 clause ii): the Peer_Bundle-identical
// tier (1.0) and the Service_Provider tier (0.7) both read as strong
// alignment; the Referral client-adjacent tier (0.9) as complementary
// referral fit; the Referral competitor-penalty tier (0.1) as the
// explicit warning. Other tiers (Peer-different 0.2, Referral-unrelated
// 0.3) don't match a named phrase and emit no clause.
func nicheClause(nicheScore float64) string {
	switch {
	case nicheScore >= 1.0 || nicheScore == 0.7:
		return "Strong business alignment"
	case nicheScore == 0.9:
		return "Complementary referral fit"
	case nicheScore == 0.1:
		return "Competitor — low recommendation"
	default:
		return ""
	}
}
