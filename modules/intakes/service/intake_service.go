package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jvmatch/partnermatch/internal/platform/storage"
	"github.com/jvmatch/partnermatch/modules/intakes/model"
	"github.com/jvmatch/partnermatch/modules/intakes/ports"
)

var validPreferences = map[model.PreferenceType]bool{
	model.PeerBundle:         true,
	model.ReferralUpstream:   true,
	model.ReferralDownstream: true,
	model.ServiceProvider:    true,
}

var validAntiPersonas = map[model.AntiPersona]bool{
	model.NoBeginners:        true,
	model.NoServiceProviders: true,
	model.NoCompetitors:      true,
}

// IntakeService validates and persists per-event intake submissions.
type IntakeService struct {
	repo      ports.IntakeRepository
	s3Client  *storage.S3Client
	s3Enabled bool
	now       func() time.Time
}

func NewIntakeService(repo ports.IntakeRepository, s3Client *storage.S3Client, now func() time.Time) *IntakeService {
	return &IntakeService{repo: repo, s3Client: s3Client, s3Enabled: s3Client != nil, now: now}
}

// CreateIntakeRequest is the payload to submit a new intake. Validation
// enforces the ≤2 verified offers/needs invariant and the (profile, event)
// uniqueness invariant (spec §3).
type CreateIntakeRequest struct {
	ProfileID       string
	EventID         string
	EventName       string
	EventDate       time.Time
	VerifiedOffers  []string
	VerifiedNeeds   []string
	MatchPreference []model.PreferenceType
	AntiPersonas    []model.AntiPersona
	SuggestedOffers []string
	SuggestedNeeds  []string
}

func (s *IntakeService) Create(ctx context.Context, req *CreateIntakeRequest) (*model.IntakeSubmissionDTO, error) {
	if strings.TrimSpace(req.EventID) == "" {
		return nil, model.ErrEventIDRequired
	}
	if len(req.VerifiedOffers) > 2 {
		return nil, model.ErrTooManyVerifiedOffers
	}
	if len(req.VerifiedNeeds) > 2 {
		return nil, model.ErrTooManyVerifiedNeeds
	}
	for _, p := range req.MatchPreference {
		if !validPreferences[p] {
			return nil, model.ErrInvalidPreference
		}
	}
	for _, a := range req.AntiPersonas {
		if !validAntiPersonas[a] {
			return nil, model.ErrInvalidAntiPersona
		}
	}

	if existing, err := s.repo.GetByProfileAndEvent(ctx, req.ProfileID, req.EventID); err == nil && existing != nil {
		return nil, model.ErrDuplicateIntake
	}

	preferences := req.MatchPreference
	if len(preferences) == 0 {
		preferences = []model.PreferenceType{model.PeerBundle}
	}

	intake := &model.IntakeSubmission{
		ID:              uuid.New().String(),
		ProfileID:       req.ProfileID,
		EventID:         req.EventID,
		EventName:       req.EventName,
		EventDate:       req.EventDate,
		VerifiedOffers:  req.VerifiedOffers,
		VerifiedNeeds:   req.VerifiedNeeds,
		MatchPreference: preferences,
		AntiPersonas:    req.AntiPersonas,
		SuggestedOffers: req.SuggestedOffers,
		SuggestedNeeds:  req.SuggestedNeeds,
	}
	if err := s.repo.Create(ctx, intake); err != nil {
		return nil, err
	}
	return intake.ToDTO(s.now(), nil), nil
}

// Confirm marks an intake confirmed, making it Platinum-qualifying for 30
// days from now. "Latest confirmed wins" (spec §3 lifecycle) is enforced by
// the assembler reading LatestConfirmedByProfile rather than here.
func (s *IntakeService) Confirm(ctx context.Context, id string) (*model.IntakeSubmissionDTO, error) {
	now := s.now()
	if err := s.repo.Confirm(ctx, id, now); err != nil {
		return nil, err
	}
	intake, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return intake.ToDTO(now, nil), nil
}

func (s *IntakeService) GetByID(ctx context.Context, id string) (*model.IntakeSubmissionDTO, error) {
	intake, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	var evidenceURL *string
	if s.s3Enabled && intake.EvidenceKey != nil {
		if url, err := s.s3Client.GeneratePresignedDownloadURL(ctx, *intake.EvidenceKey, 15*time.Minute); err == nil {
			evidenceURL = &url
		}
	}
	return intake.ToDTO(s.now(), evidenceURL), nil
}

// GenerateEvidenceUploadURL presigns an upload slot for an optional
// supporting scan (e.g. a signed verification form), grounded on the
// teacher's resume upload flow.
func (s *IntakeService) GenerateEvidenceUploadURL(ctx context.Context, intakeID, contentType string) (string, error) {
	if !s.s3Enabled {
		return "", fmt.Errorf("S3 storage is not configured")
	}
	key := fmt.Sprintf("intakes/%s/evidence.pdf", intakeID)
	url, err := s.s3Client.GeneratePresignedUploadURL(ctx, key, contentType, 5*time.Minute)
	if err != nil {
		return "", fmt.Errorf("failed to generate upload URL: %w", err)
	}
	if err := s.repo.SetEvidenceKey(ctx, intakeID, key); err != nil {
		return "", err
	}
	return url, nil
}
