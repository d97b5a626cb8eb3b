package model

import (
	"strings"
	"time"
)

// Profile is the canonical person record the matching pipeline scores against.
type Profile struct {
	ID          string
	DisplayName string
	Email       *string
	Company     *string
	Website     *string
	Niche       string
	Audience    string
	ListSize    int
	SocialReach int
	LastActiveAt *time.Time
	Offering    *string
	Seeking     *string
	WhatYouDo   *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProfileDTO is the JSON representation returned by the HTTP surface.
type ProfileDTO struct {
	ID           string     `json:"id"`
	DisplayName  string     `json:"display_name"`
	Email        *string    `json:"email,omitempty"`
	Company      *string    `json:"company,omitempty"`
	Website      *string    `json:"website,omitempty"`
	Niche        string     `json:"niche"`
	Audience     string     `json:"audience"`
	ListSize     int        `json:"list_size"`
	SocialReach  int        `json:"social_reach"`
	Reach        int        `json:"reach"`
	LastActiveAt *time.Time `json:"last_active_at,omitempty"`
	Offering     *string    `json:"offering,omitempty"`
	Seeking      *string    `json:"seeking,omitempty"`
	WhatYouDo    *string    `json:"what_you_do,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Reach is list_size + social_reach, per the GLOSSARY definition.
func (p *Profile) Reach() int {
	return p.ListSize + p.SocialReach
}

// NormalizedNiche case-folds and collapses whitespace, the form every
// niche-relationship comparison in the Scorer and Resolver operates on.
func (p *Profile) NormalizedNiche() string {
	return NormalizeText(p.Niche)
}

// NormalizeText applies the resolver's name/niche normalization: unicode
// case-fold, collapse internal whitespace, trim.
func NormalizeText(s string) string {
	fields := strings.Fields(strings.ToLower(s))
	return strings.Join(fields, " ")
}

// ToDTO converts Profile to ProfileDTO.
func (p *Profile) ToDTO() *ProfileDTO {
	return &ProfileDTO{
		ID:           p.ID,
		DisplayName:  p.DisplayName,
		Email:        p.Email,
		Company:      p.Company,
		Website:      p.Website,
		Niche:        p.Niche,
		Audience:     p.Audience,
		ListSize:     p.ListSize,
		SocialReach:  p.SocialReach,
		Reach:        p.Reach(),
		LastActiveAt: p.LastActiveAt,
		Offering:     p.Offering,
		Seeking:      p.Seeking,
		WhatYouDo:    p.WhatYouDo,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
