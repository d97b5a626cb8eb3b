package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jvmatch/partnermatch/modules/taxonomy/model"
)

// TaxonomyRepository persists the curated niche taxonomy and its
// profile-to-tag relations, adapted from the teacher's generic tagging
// module into a domain-specific taxonomy the Synergy component consults.
type TaxonomyRepository struct {
	pool *pgxpool.Pool
}

func NewTaxonomyRepository(pool *pgxpool.Pool) *TaxonomyRepository {
	return &TaxonomyRepository{pool: pool}
}

func (r *TaxonomyRepository) Create(ctx context.Context, tag *model.NicheTag) error {
	query := `INSERT INTO niche_tags (id, name, normalized_name, parent_id, created_at) VALUES ($1, $2, $3, $4, $5)`
	tag.ID = uuid.New().String()
	tag.CreatedAt = time.Now().UTC()
	_, err := r.pool.Exec(ctx, query, tag.ID, tag.Name, tag.NormalizedName, tag.ParentID, tag.CreatedAt)
	return err
}

func (r *TaxonomyRepository) List(ctx context.Context) ([]*model.NicheTag, error) {
	query := `SELECT id, name, normalized_name, parent_id, created_at FROM niche_tags ORDER BY name ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []*model.NicheTag
	for rows.Next() {
		t := &model.NicheTag{}
		if err := rows.Scan(&t.ID, &t.Name, &t.NormalizedName, &t.ParentID, &t.CreatedAt); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

func (r *TaxonomyRepository) TagProfile(ctx context.Context, rel *model.ProfileNicheTag) error {
	query := `INSERT INTO profile_niche_tags (id, profile_id, niche_tag_id, created_at) VALUES ($1, $2, $3, $4)
		ON CONFLICT (profile_id, niche_tag_id) DO NOTHING`
	rel.ID = uuid.New().String()
	rel.CreatedAt = time.Now().UTC()
	_, err := r.pool.Exec(ctx, query, rel.ID, rel.ProfileID, rel.NicheTagID, rel.CreatedAt)
	return err
}

// NicheTagsForProfile lists the normalized niche tag names attached to a
// profile, used to short-circuit an identical-niche check before falling
// back to the semantic oracle.
func (r *TaxonomyRepository) NicheTagsForProfile(ctx context.Context, profileID string) ([]string, error) {
	query := `
		SELECT nt.normalized_name
		FROM niche_tags nt
		INNER JOIN profile_niche_tags pnt ON nt.id = pnt.niche_tag_id
		WHERE pnt.profile_id = $1
	`
	rows, err := r.pool.Query(ctx, query, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// NicheTagsByProfile is the batched form of NicheTagsForProfile, one query
// for the whole cycle's profile set instead of one round trip per profile,
// mirroring modules/intakes' LatestConfirmedByProfile/EventsAttendedByProfile
// batch-loading pattern for the Feature Assembler.
func (r *TaxonomyRepository) NicheTagsByProfile(ctx context.Context, profileIDs []string) (map[string][]string, error) {
	out := make(map[string][]string, len(profileIDs))
	if len(profileIDs) == 0 {
		return out, nil
	}

	query := `
		SELECT pnt.profile_id, nt.normalized_name
		FROM niche_tags nt
		INNER JOIN profile_niche_tags pnt ON nt.id = pnt.niche_tag_id
		WHERE pnt.profile_id = ANY($1)
	`
	rows, err := r.pool.Query(ctx, query, profileIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var profileID, name string
		if err := rows.Scan(&profileID, &name); err != nil {
			return nil, err
		}
		out[profileID] = append(out[profileID], name)
	}
	return out, rows.Err()
}
