package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/thealbion75/sport-community-api/internal/dto"
	"github.com/thealbion75/sport-community-api/internal/models"
	"github.com/thealbion75/sport-community-api/internal/repository"
)

// ErrDuplicateClubEmail indicates a registration reused a contact email.
var ErrDuplicateClubEmail = errors.New("a club is already registered with this email")

// ErrClubNotApproved indicates an opportunity was submitted for a club that
// has not been approved yet.
var ErrClubNotApproved = errors.New("club is not approved")

// ClubService covers the public intake side: self-registration, the approved
// directory and opportunity submission. Status changes stay with the review
// engine.
type ClubService interface {
	Register(ctx context.Context, req dto.ClubRegistrationRequest) (dto.ClubResponse, error)
	Directory(ctx context.Context, req dto.ReviewListRequest) ([]dto.ClubResponse, dto.PaginationMeta, error)
	SubmitOpportunity(ctx context.Context, req dto.OpportunityCreateRequest) (dto.OpportunityResponse, error)
	OpenOpportunities(ctx context.Context, req dto.ReviewListRequest) ([]dto.OpportunityResponse, dto.PaginationMeta, error)
}

type clubService struct {
	clubs         repository.ClubRepository
	clubEngine    *ReviewEngine[models.Club]
	opportunities repository.ReviewStore[models.VolunteerOpportunity]
	oppEngine     *ReviewEngine[models.VolunteerOpportunity]
	validator     *validator.Validate
	sanitizer     *bluemonday.Policy
	logger        zerolog.Logger
}

// NewClubService constructs the public club service.
func NewClubService(
	clubs repository.ClubRepository,
	clubEngine *ReviewEngine[models.Club],
	opportunities repository.ReviewStore[models.VolunteerOpportunity],
	oppEngine *ReviewEngine[models.VolunteerOpportunity],
	validate *validator.Validate,
	logger zerolog.Logger,
) ClubService {
	return &clubService{
		clubs:         clubs,
		clubEngine:    clubEngine,
		opportunities: opportunities,
		oppEngine:     oppEngine,
		validator:     validate,
		sanitizer:     bluemonday.StrictPolicy(),
		logger:        logger.With().Str("component", "club_service").Logger(),
	}
}

func (s *clubService) Register(ctx context.Context, req dto.ClubRegistrationRequest) (dto.ClubResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.ClubResponse{}, err
	}

	email := strings.ToLower(strings.TrimSpace(req.ContactEmail))
	exists, err := s.clubs.ExistsByEmail(ctx, email)
	if err != nil {
		return dto.ClubResponse{}, fmt.Errorf("check registration email: %w", err)
	}
	if exists {
		return dto.ClubResponse{}, ErrDuplicateClubEmail
	}

	club := models.Club{
		ReferenceID:  uuid.NewString(),
		Name:         s.sanitizer.Sanitize(strings.TrimSpace(req.Name)),
		ContactName:  s.sanitizer.Sanitize(strings.TrimSpace(req.ContactName)),
		ContactEmail: email,
		Description:  s.sanitizer.Sanitize(strings.TrimSpace(req.Description)),
		Website:      strings.TrimSpace(req.Website),
		Status:       models.StatusPending,
	}

	if err := s.clubs.Create(ctx, &club); err != nil {
		s.logger.Error().Err(err).Msg("failed to create club registration")
		return dto.ClubResponse{}, fmt.Errorf("create club registration: %w", err)
	}

	s.logger.Info().Uint("club_id", club.ID).Str("reference_id", club.ReferenceID).Msg("club registration received")

	return dto.NewClubResponse(club), nil
}

// Directory lists approved clubs only, regardless of the requested status.
func (s *clubService) Directory(ctx context.Context, req dto.ReviewListRequest) ([]dto.ClubResponse, dto.PaginationMeta, error) {
	req.Status = string(models.StatusApproved)

	clubs, meta, err := s.clubEngine.List(ctx, req, nil)
	if err != nil {
		return nil, dto.PaginationMeta{}, err
	}

	items := make([]dto.ClubResponse, 0, len(clubs))
	for _, club := range clubs {
		items = append(items, dto.NewClubResponse(club))
	}

	return items, meta, nil
}

func (s *clubService) SubmitOpportunity(ctx context.Context, req dto.OpportunityCreateRequest) (dto.OpportunityResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.OpportunityResponse{}, err
	}

	club, err := s.clubEngine.Get(ctx, req.ClubID)
	if err != nil {
		return dto.OpportunityResponse{}, err
	}
	if club.Status != models.StatusApproved {
		return dto.OpportunityResponse{}, ErrClubNotApproved
	}

	opportunity := models.VolunteerOpportunity{
		ClubID:      club.ID,
		Title:       s.sanitizer.Sanitize(strings.TrimSpace(req.Title)),
		Description: s.sanitizer.Sanitize(strings.TrimSpace(req.Description)),
		Commitment:  s.sanitizer.Sanitize(strings.TrimSpace(req.Commitment)),
		Status:      models.StatusPending,
	}

	if err := s.opportunities.Create(ctx, &opportunity); err != nil {
		s.logger.Error().Err(err).Uint("club_id", club.ID).Msg("failed to create opportunity")
		return dto.OpportunityResponse{}, fmt.Errorf("create opportunity: %w", err)
	}

	return dto.NewOpportunityResponse(opportunity), nil
}

// OpenOpportunities lists approved volunteer opportunities for the public site.
func (s *clubService) OpenOpportunities(ctx context.Context, req dto.ReviewListRequest) ([]dto.OpportunityResponse, dto.PaginationMeta, error) {
	req.Status = string(models.StatusApproved)

	opportunities, meta, err := s.oppEngine.List(ctx, req, nil)
	if err != nil {
		return nil, dto.PaginationMeta{}, err
	}

	items := make([]dto.OpportunityResponse, 0, len(opportunities))
	for _, opportunity := range opportunities {
		items = append(items, dto.NewOpportunityResponse(opportunity))
	}

	return items, meta, nil
}
