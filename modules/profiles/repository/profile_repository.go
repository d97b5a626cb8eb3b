package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jvmatch/partnermatch/modules/profiles/model"
)

// ProfileRepository implements ports.ProfileRepository.
type ProfileRepository struct {
	pool *pgxpool.Pool
}

// NewProfileRepository creates a new profile repository.
func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

// Create inserts a new profile.
func (r *ProfileRepository) Create(ctx context.Context, p *model.Profile) error {
	query := `
		INSERT INTO profiles (id, display_name, email, company, website, niche, audience,
			list_size, social_reach, last_active_at, offering, seeking, what_you_do, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	p.ID = uuid.New().String()
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	_, err := r.pool.Exec(ctx, query,
		p.ID, p.DisplayName, p.Email, p.Company, p.Website, p.Niche, p.Audience,
		p.ListSize, p.SocialReach, p.LastActiveAt, p.Offering, p.Seeking, p.WhatYouDo,
		p.CreatedAt, p.UpdatedAt,
	)
	return err
}

// GetByID retrieves a profile by ID.
func (r *ProfileRepository) GetByID(ctx context.Context, profileID string) (*model.Profile, error) {
	query := `
		SELECT id, display_name, email, company, website, niche, audience,
			list_size, social_reach, last_active_at, offering, seeking, what_you_do, created_at, updated_at
		FROM profiles
		WHERE id = $1
	`

	p := &model.Profile{}
	err := r.pool.QueryRow(ctx, query, profileID).Scan(
		&p.ID, &p.DisplayName, &p.Email, &p.Company, &p.Website, &p.Niche, &p.Audience,
		&p.ListSize, &p.SocialReach, &p.LastActiveAt, &p.Offering, &p.Seeking, &p.WhatYouDo,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrProfileNotFound
		}
		return nil, err
	}
	return p, nil
}

// GetByEmail retrieves a profile whose trimmed, lower-cased email equals
// email; callers pass the address already normalized. The Resolver's tier-1
// step matches emails against its loaded profile pool and does not call it.
func (r *ProfileRepository) GetByEmail(ctx context.Context, email string) (*model.Profile, error) {
	query := `
		SELECT id, display_name, email, company, website, niche, audience,
			list_size, social_reach, last_active_at, offering, seeking, what_you_do, created_at, updated_at
		FROM profiles
		WHERE LOWER(TRIM(email)) = $1
	`

	p := &model.Profile{}
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&p.ID, &p.DisplayName, &p.Email, &p.Company, &p.Website, &p.Niche, &p.Audience,
		&p.ListSize, &p.SocialReach, &p.LastActiveAt, &p.Offering, &p.Seeking, &p.WhatYouDo,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrProfileNotFound
		}
		return nil, err
	}
	return p, nil
}

// List retrieves profiles with pagination and sorting.
func (r *ProfileRepository) List(ctx context.Context, limit, offset int, sortBy, sortOrder string) ([]*model.ProfileDTO, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM profiles`).Scan(&total); err != nil {
		return nil, 0, err
	}

	orderBy := "created_at DESC"
	if sortBy != "" {
		switch sortBy {
		case "created_at":
			if sortOrder == "asc" {
				orderBy = "created_at ASC"
			} else {
				orderBy = "created_at DESC"
			}
		case "display_name":
			if sortOrder == "asc" {
				orderBy = "LOWER(display_name) ASC"
			} else {
				orderBy = "LOWER(display_name) DESC"
			}
		case "reach":
			if sortOrder == "asc" {
				orderBy = "(list_size + social_reach) ASC"
			} else {
				orderBy = "(list_size + social_reach) DESC"
			}
		default:
			orderBy = "created_at DESC"
		}
	}

	query := `
		SELECT id, display_name, email, company, website, niche, audience,
			list_size, social_reach, last_active_at, offering, seeking, what_you_do, created_at, updated_at
		FROM profiles
		ORDER BY ` + orderBy + `
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var profiles []*model.ProfileDTO
	for rows.Next() {
		p := &model.Profile{}
		if err := rows.Scan(
			&p.ID, &p.DisplayName, &p.Email, &p.Company, &p.Website, &p.Niche, &p.Audience,
			&p.ListSize, &p.SocialReach, &p.LastActiveAt, &p.Offering, &p.Seeking, &p.WhatYouDo,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		profiles = append(profiles, p.ToDTO())
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return profiles, total, nil
}

// ListAll returns every profile, unpaginated — the load_profiles()
// collaborator the Resolver and Feature Assembler consume at cycle start.
func (r *ProfileRepository) ListAll(ctx context.Context) ([]*model.Profile, error) {
	query := `
		SELECT id, display_name, email, company, website, niche, audience,
			list_size, social_reach, last_active_at, offering, seeking, what_you_do, created_at, updated_at
		FROM profiles
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []*model.Profile
	for rows.Next() {
		p := &model.Profile{}
		if err := rows.Scan(
			&p.ID, &p.DisplayName, &p.Email, &p.Company, &p.Website, &p.Niche, &p.Audience,
			&p.ListSize, &p.SocialReach, &p.LastActiveAt, &p.Offering, &p.Seeking, &p.WhatYouDo,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

// Update updates a profile.
func (r *ProfileRepository) Update(ctx context.Context, p *model.Profile) error {
	query := `
		UPDATE profiles
		SET display_name = $2, email = $3, company = $4, website = $5, niche = $6, audience = $7,
			list_size = $8, social_reach = $9, offering = $10, seeking = $11, what_you_do = $12, updated_at = $13
		WHERE id = $1
	`

	p.UpdatedAt = time.Now().UTC()

	result, err := r.pool.Exec(ctx, query,
		p.ID, p.DisplayName, p.Email, p.Company, p.Website, p.Niche, p.Audience,
		p.ListSize, p.SocialReach, p.Offering, p.Seeking, p.WhatYouDo, p.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return model.ErrProfileNotFound
	}
	return nil
}

// Delete deletes a profile.
func (r *ProfileRepository) Delete(ctx context.Context, profileID string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM profiles WHERE id = $1`, profileID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return model.ErrProfileNotFound
	}
	return nil
}

// TouchLastActive bumps last_active_at from external activity ingestion.
func (r *ProfileRepository) TouchLastActive(ctx context.Context, profileID string, at time.Time) error {
	result, err := r.pool.Exec(ctx, `UPDATE profiles SET last_active_at = $2, updated_at = $2 WHERE id = $1`, profileID, at)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return model.ErrProfileNotFound
	}
	return nil
}
