// Command seed populates a fresh database with a small, realistic cohort
// for local development: a login user, a handful of directory-sourced
// profiles (some merged, one still pending review), their niche tags and
// intake submissions, one completed cycle's match suggestions, and the
// reminder that cycle raised. Grounded on the teacher's cmd/seed, which
// seeded a single user's job-search history the same way: one tx, one
// rollback-on-failure commit, human-readable fixture data throughout.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func newID() string { return uuid.New().String() }

func hashPassword(pw string) string {
	h, err := bcrypt.GenerateFromPassword([]byte(pw), 12)
	if err != nil {
		log.Fatalf("bcrypt: %v", err)
	}
	return string(h)
}

func daysAgo(d int) time.Time {
	return time.Now().UTC().AddDate(0, 0, -d)
}

func randBetween(min, max int) int {
	return min + rand.Intn(max-min+1)
}

func must(err error, msg string) {
	if err != nil {
		log.Fatalf("%s: %v", msg, err)
	}
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func main() {
	_ = godotenv.Load()

	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		envOr("DB_HOST", "localhost"),
		envOr("DB_PORT", "5432"),
		envOr("DB_USER", "jobber"),
		envOr("DB_PASSWORD", "jobber"),
		envOr("DB_NAME", "jobber"),
		envOr("DB_SSL_MODE", "disable"),
	)

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("ping: %v", err)
	}
	fmt.Println("connected to database")

	tx, err := pool.Begin(ctx)
	if err != nil {
		log.Fatalf("begin tx: %v", err)
	}
	defer tx.Rollback(ctx)

	// ── clean up previous seed data ──────────────────────────────────────
	const seedEmail = "seed@jvmatch.dev"
	_, _ = tx.Exec(ctx, `DELETE FROM users WHERE email = $1`, seedEmail)
	fmt.Println("cleaned previous seed data")

	// ── 1. operator login ────────────────────────────────────────────────
	userID := newID()
	createdAt := daysAgo(120)
	_, err = tx.Exec(ctx,
		`INSERT INTO users (id, email, name, password_hash, locale, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		userID, seedEmail, "Morgan Operator", hashPassword("password123"), "en", createdAt, createdAt,
	)
	must(err, "create operator")
	fmt.Printf("created operator: %s / password123\n", seedEmail)

	// ── 2. niche tags ────────────────────────────────────────────────────
	type nicheTag struct{ id, name, normalized string }
	tags := []nicheTag{
		{newID(), "Newsletter", "newsletter"},
		{newID(), "Podcast", "podcast"},
		{newID(), "SaaS", "saas"},
		{newID(), "Fitness", "fitness"},
		{newID(), "Personal Finance", "personal-finance"},
		{newID(), "B2B Marketing", "b2b-marketing"},
	}
	for _, t := range tags {
		_, err = tx.Exec(ctx,
			`INSERT INTO niche_tags (id, name, normalized_name, parent_id, created_at) VALUES ($1, $2, $3, NULL, $4)`,
			t.id, t.name, t.normalized, daysAgo(110),
		)
		must(err, "create niche tag "+t.name)
	}
	fmt.Printf("created %d niche tags\n", len(tags))

	// ── 3. profiles ──────────────────────────────────────────────────────
	type profileDef struct {
		id, displayName, email, niche, audience string
		listSize, socialReach                   int
		offering, seeking, whatYouDo             string
		tagIdx                                   []int
	}
	profiles := []profileDef{
		{newID(), "Casey Newsletter", "casey@inboxgrowth.dev", "newsletter", "creators", 42000, 18000,
			"Dedicated send to 42k subscribers", "Cross-promotion with a fitness audience", "Weekly newsletter on audience growth tactics", []int{0}},
		{newID(), "Priya Fit", "priya@strongstart.fit", "fitness", "general consumer", 15000, 61000,
			"Instagram reel shoutout", "A newsletter partner to reach engaged readers", "Fitness coaching and home-workout programs", []int{3}},
		{newID(), "Devon SaaS", "devon@ledgerloop.io", "saas", "b2b buyers", 3000, 9000,
			"Co-webinar with a B2B marketing voice", "Warm intros into marketing ops teams", "Runs a bookkeeping automation SaaS", []int{2, 5}},
		{newID(), "Jordan Pod", "jordan@moneytalkspod.com", "podcast", "retail investors", 28000, 40000,
			"Guest-swap episode", "A personal-finance creator for a crossover episode", "Hosts a weekly personal finance podcast", []int{1, 4}},
		{newID(), "Sam Marketer", "", "b2b-marketing", "marketing leaders", 8000, 22000,
			"Co-authored case study", "A SaaS partner willing to be the case study subject", "B2B marketing strategy content", []int{5}},
	}
	for _, p := range profiles {
		_, err = tx.Exec(ctx,
			`INSERT INTO profiles (id, display_name, email, company, website, niche, audience,
				list_size, social_reach, last_active_at, offering, seeking, what_you_do, created_at, updated_at)
			 VALUES ($1, $2, $3, NULL, NULL, $4, $5, $6, $7, $8, $9, $10, $11, $12, $12)`,
			p.id, p.displayName, nullIfEmpty(p.email), p.niche, p.audience, p.listSize, p.socialReach,
			daysAgo(randBetween(1, 20)), p.offering, p.seeking, p.whatYouDo, daysAgo(randBetween(90, 110)),
		)
		must(err, "create profile "+p.displayName)

		for _, ti := range p.tagIdx {
			_, err = tx.Exec(ctx,
				`INSERT INTO profile_niche_tags (id, profile_id, niche_tag_id, created_at) VALUES ($1, $2, $3, $4)
				 ON CONFLICT (profile_id, niche_tag_id) DO NOTHING`,
				newID(), p.id, tags[ti].id, daysAgo(90),
			)
			must(err, "tag profile "+p.displayName)
		}
	}
	fmt.Printf("created %d profiles\n", len(profiles))

	// ── 4. directory records ────────────────────────────────────────────
	// Four already resolved to the profiles above, one still pending
	// disambiguation, exercising the resolver's review queue.
	type directoryDef struct {
		id, source, rawName, rawEmail string
		resolvedProfileIdx            *int
	}
	resolvedIdx := func(i int) *int { return &i }
	directoryRecords := []directoryDef{
		{newID(), "csv", "Casey Newsletter", "casey@inboxgrowth.dev", resolvedIdx(0)},
		{newID(), "transcript", "Priya Fit", "priya@strongstart.fit", resolvedIdx(1)},
		{newID(), "csv", "Devon SaaS", "devon@ledgerloop.io", resolvedIdx(2)},
		{newID(), "csv", "Jordan Pod", "jordan@moneytalkspod.com", resolvedIdx(3)},
		{newID(), "transcript", "Sam Marketer", "", nil},
	}
	var directoryIDs []string
	for i, d := range directoryRecords {
		status := "unresolved"
		var resolvedID *string
		if d.resolvedProfileIdx != nil {
			status = "merged"
			resolvedID = &profiles[*d.resolvedProfileIdx].id
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO directory_records (id, source, event_id, raw_name, raw_email, raw_company, raw_website,
				resolved_profile_id, status, created_at, updated_at)
			 VALUES ($1, $2, NULL, $3, $4, NULL, NULL, $5, $6, $7, $7)`,
			d.id, d.source, d.rawName, nullIfEmpty(d.rawEmail), resolvedID, status, daysAgo(randBetween(5, 15)),
		)
		must(err, fmt.Sprintf("create directory record %d", i))
		directoryIDs = append(directoryIDs, d.id)
	}
	fmt.Printf("created %d directory records\n", len(directoryRecords))

	// ── 5. pending review queue entry + comment ─────────────────────────
	reviewID := newID()
	_, err = tx.Exec(ctx,
		`INSERT INTO review_queue_entries (id, directory_record_id, candidate_profile_id, confidence, reason, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		reviewID, directoryIDs[4], profiles[4].id, 0.58, "ambiguous_match", "pending", daysAgo(2),
	)
	must(err, "create review queue entry")

	_, err = tx.Exec(ctx,
		`INSERT INTO comments (id, user_id, review_queue_entry_id, content, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $5)`,
		newID(), userID, reviewID, "Raw name matches Sam Marketer closely but email is missing from the transcript; confirm before merging.", daysAgo(1),
	)
	must(err, "create review comment")
	fmt.Println("created 1 pending review queue entry with a comment")

	// ── 6. intake submissions ────────────────────────────────────────────
	type intakeDef struct {
		profileIdx                int
		eventName                 string
		verifiedOffers, verifiedNeeds []string
		preferences               []string
		antiPersonas              []string
	}
	intakes := []intakeDef{
		{0, "Creator Meetup Q2", []string{"Dedicated send to 42k subscribers"}, []string{"Cross-promotion with a fitness audience"},
			[]string{"Peer_Bundle"}, nil},
		{1, "Creator Meetup Q2", []string{"Instagram reel shoutout"}, []string{"A newsletter partner to reach engaged readers"},
			[]string{"Peer_Bundle"}, []string{"no_service_providers"}},
		{2, "B2B Founders Summit", []string{"Co-webinar with a B2B marketing voice"}, []string{"Warm intros into marketing ops teams"},
			[]string{"Referral_Upstream"}, nil},
		{3, "B2B Founders Summit", []string{"Guest-swap episode"}, []string{"A personal-finance creator for a crossover episode"},
			[]string{"Peer_Bundle", "Referral_Downstream"}, []string{"no_competitors"}},
	}
	for _, in := range intakes {
		_, err = tx.Exec(ctx,
			`INSERT INTO intake_submissions
				(id, profile_id, event_id, event_name, event_date, verified_offers, verified_needs,
				 match_preference, anti_personas, suggested_offers, suggested_needs, confirmed_at,
				 evidence_key, created_at, updated_at)
			 VALUES ($1, $2, NULL, $3, $4, $5, $6, $7, $8, $9, $10, $11, NULL, $12, $12)`,
			newID(), profiles[in.profileIdx].id, in.eventName, daysAgo(randBetween(15, 25)),
			in.verifiedOffers, in.verifiedNeeds, in.preferences, in.antiPersonas,
			[]string{}, []string{}, daysAgo(randBetween(15, 25)), daysAgo(randBetween(15, 25)),
		)
		must(err, "create intake for "+profiles[in.profileIdx].displayName)
	}
	fmt.Printf("created %d intake submissions\n", len(intakes))

	// ── 7. one completed cycle: report, match suggestions, reminder ─────
	cycleID := "seed-cycle-" + newID()
	cfgSnapshot, _ := json.Marshal(map[string]interface{}{
		"top_k": 20, "popularity_cap": 5, "expiry_days": 7,
		"intent_fallback_threshold": 0.30, "semantic_match_threshold": 0.65, "oracle_enabled": true,
	})
	startedAt := daysAgo(1)
	endedAt := startedAt.Add(4 * time.Minute)

	type suggestionDef struct {
		targetIdx, candidateIdx int
		scoreAB, scoreBA        float64
		harmonicMean            float64
		trustLevel              string
		rank                    int
		tier                    string
	}
	suggestions := []suggestionDef{
		{0, 1, 82.0, 75.0, 78.3, "Platinum", 1, "Gold"},
		{1, 0, 75.0, 82.0, 78.3, "Platinum", 1, "Gold"},
		{2, 3, 70.0, 68.0, 69.0, "Gold", 1, "Gold"},
		{3, 2, 68.0, 70.0, 69.0, "Gold", 1, "Gold"},
	}
	for _, s := range suggestions {
		matchID := newID()
		_, err = tx.Exec(ctx,
			`INSERT INTO match_suggestions
				(id, cycle_id, target_profile_id, candidate_profile_id, score_ab, score_ba,
				 harmonic_mean, scale_symmetry_score, trust_level, match_reason, status, rank, tier,
				 config_snapshot, expires_at, suggested_at, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $16, $16)
			 ON CONFLICT (target_profile_id, candidate_profile_id) DO NOTHING`,
			matchID, cycleID, profiles[s.targetIdx].id, profiles[s.candidateIdx].id, s.scoreAB, s.scoreBA,
			s.harmonicMean, 0.9, s.trustLevel, "complementary niche, comparable reach", "pending", s.rank, s.tier,
			cfgSnapshot, endedAt.AddDate(0, 0, 7), endedAt,
		)
		must(err, "create match suggestion")

		_, err = tx.Exec(ctx,
			`INSERT INTO match_status_events (id, match_id, from_status, to_status, occurred_at) VALUES ($1, $2, $3, $4, $5)`,
			newID(), matchID, "", "pending", endedAt,
		)
		must(err, "create match status event")
	}
	fmt.Printf("created %d match suggestions\n", len(suggestions))

	_, err = tx.Exec(ctx,
		`INSERT INTO cycle_reports (
			cycle_id, profiles_scored, pairs_considered, pairs_emitted,
			pairs_dropped_by_fairness, orphans, started_at, ended_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		cycleID, len(profiles), len(suggestions)+2, len(suggestions), 0, 1, startedAt, endedAt,
	)
	must(err, "create cycle report")

	_, err = tx.Exec(ctx,
		`INSERT INTO cycle_reminders (id, cycle_id, remind_at, message, is_done, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		newID(), cycleID, endedAt.AddDate(0, 0, 1), "1 profile orphaned this cycle; resolve the pending review queue before the next cycle", false, endedAt,
	)
	must(err, "create cycle reminder")
	fmt.Println("created 1 cycle report and its orphan-backlog reminder")

	// ── commit ───────────────────────────────────────────────────────────
	if err := tx.Commit(ctx); err != nil {
		log.Fatalf("commit: %v", err)
	}

	fmt.Println("\nseed completed successfully")
	fmt.Printf("  login: %s / password123\n", seedEmail)
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
