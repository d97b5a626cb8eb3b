package service

import (
	"context"
	"strings"

	"github.com/jvmatch/partnermatch/modules/profiles/model"
	"github.com/jvmatch/partnermatch/modules/profiles/ports"
)

// ProfileService handles profile business logic.
type ProfileService struct {
	repo ports.ProfileRepository
}

// NewProfileService creates a new profile service.
func NewProfileService(repo ports.ProfileRepository) *ProfileService {
	return &ProfileService{repo: repo}
}

// Create registers a new profile.
func (s *ProfileService) Create(ctx context.Context, req *model.CreateProfileRequest) (*model.ProfileDTO, error) {
	if strings.TrimSpace(req.DisplayName) == "" {
		return nil, model.ErrDisplayNameRequired
	}
	if req.ListSize < 0 || req.SocialReach < 0 {
		return nil, model.ErrNegativeReach
	}

	profile := &model.Profile{
		DisplayName: strings.TrimSpace(req.DisplayName),
		Email:       req.Email,
		Company:     req.Company,
		Website:     req.Website,
		Niche:       model.NormalizeText(req.Niche),
		Audience:    model.NormalizeText(req.Audience),
		ListSize:    req.ListSize,
		SocialReach: req.SocialReach,
		Offering:    req.Offering,
		Seeking:     req.Seeking,
		WhatYouDo:   req.WhatYouDo,
	}

	if err := s.repo.Create(ctx, profile); err != nil {
		return nil, err
	}

	return profile.ToDTO(), nil
}

// GetByID retrieves a profile by ID.
func (s *ProfileService) GetByID(ctx context.Context, profileID string) (*model.ProfileDTO, error) {
	profile, err := s.repo.GetByID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	return profile.ToDTO(), nil
}

// List retrieves profiles with pagination and sorting.
func (s *ProfileService) List(ctx context.Context, limit, offset int, sortBy, sortOrder string) ([]*model.ProfileDTO, int, error) {
	return s.repo.List(ctx, limit, offset, sortBy, sortOrder)
}

// Update applies a partial update to a profile.
func (s *ProfileService) Update(ctx context.Context, profileID string, req *model.UpdateProfileRequest) (*model.ProfileDTO, error) {
	profile, err := s.repo.GetByID(ctx, profileID)
	if err != nil {
		return nil, err
	}

	if req.DisplayName != nil {
		if strings.TrimSpace(*req.DisplayName) == "" {
			return nil, model.ErrDisplayNameRequired
		}
		profile.DisplayName = strings.TrimSpace(*req.DisplayName)
	}
	if req.Email != nil {
		profile.Email = req.Email
	}
	if req.Company != nil {
		profile.Company = req.Company
	}
	if req.Website != nil {
		profile.Website = req.Website
	}
	if req.Niche != nil {
		profile.Niche = model.NormalizeText(*req.Niche)
	}
	if req.Audience != nil {
		profile.Audience = model.NormalizeText(*req.Audience)
	}
	if req.ListSize != nil {
		if *req.ListSize < 0 {
			return nil, model.ErrNegativeReach
		}
		profile.ListSize = *req.ListSize
	}
	if req.SocialReach != nil {
		if *req.SocialReach < 0 {
			return nil, model.ErrNegativeReach
		}
		profile.SocialReach = *req.SocialReach
	}
	if req.Offering != nil {
		profile.Offering = req.Offering
	}
	if req.Seeking != nil {
		profile.Seeking = req.Seeking
	}
	if req.WhatYouDo != nil {
		profile.WhatYouDo = req.WhatYouDo
	}

	if err := s.repo.Update(ctx, profile); err != nil {
		return nil, err
	}

	return profile.ToDTO(), nil
}

// Delete deletes a profile.
func (s *ProfileService) Delete(ctx context.Context, profileID string) error {
	return s.repo.Delete(ctx, profileID)
}
