package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/thealbion75/sport-community-api/internal/dto"
	"github.com/thealbion75/sport-community-api/internal/models"
	"github.com/thealbion75/sport-community-api/internal/repository"
)

func newClubService(t *testing.T, db *gorm.DB) ClubService {
	t.Helper()
	opportunityStore := repository.NewReviewStore[models.VolunteerOpportunity](db, "title", "description")
	oppEngine := NewReviewEngine("opportunity", models.ApplicationStatuses, opportunityStore,
		repository.NewReviewLogRepository(db), repository.NewUserRepository(db),
		nil, nil, 0, zerolog.Nop())
	return NewClubService(
		repository.NewClubRepository(db),
		newClubEngine(t, db),
		opportunityStore,
		oppEngine,
		validator.New(validator.WithRequiredStructEnabled()),
		zerolog.Nop(),
	)
}

func TestClubServiceRegisterCreatesPendingApplication(t *testing.T) {
	db := setupTestDB(t)
	svc := newClubService(t, db)

	club, err := svc.Register(context.Background(), dto.ClubRegistrationRequest{
		Name:         "Harriers Running Club",
		ContactName:  "Jo Runner",
		ContactEmail: "JO@Harriers.example.com",
		Description:  "Road and <script>alert('x')</script>trail running",
	})
	require.NoError(t, err)
	require.Equal(t, "pending", club.Status)
	require.NotEmpty(t, club.ReferenceID)
	require.Equal(t, "jo@harriers.example.com", club.ContactEmail)
	require.NotContains(t, club.Description, "<script>", "markup is stripped before storage")
}

func TestClubServiceRegisterRejectsDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	svc := newClubService(t, db)

	req := dto.ClubRegistrationRequest{Name: "Badminton Club", ContactName: "Pat", ContactEmail: "pat@example.com"}
	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	req.Name = "Another Badminton Club"
	_, err = svc.Register(context.Background(), req)
	require.ErrorIs(t, err, ErrDuplicateClubEmail)
}

func TestClubServiceRegisterValidatesPayload(t *testing.T) {
	db := setupTestDB(t)
	svc := newClubService(t, db)

	_, err := svc.Register(context.Background(), dto.ClubRegistrationRequest{Name: "No Contact"})
	require.Error(t, err)
}

func TestClubServiceDirectoryShowsApprovedOnly(t *testing.T) {
	db := setupTestDB(t)
	admin := seedAdmin(t, db)
	clubs := seedPendingClubs(t, db, 3)
	engine := newClubEngine(t, db)
	svc := newClubService(t, db)

	_, err := engine.Transition(context.Background(), clubs[0].ID, models.StatusApproved, ReviewActor{ID: admin.ID, Role: models.RoleAdmin}, "")
	require.NoError(t, err)

	listed, meta, err := svc.Directory(context.Background(), dto.ReviewListRequest{Status: "pending", PageSize: 10})
	require.NoError(t, err)
	require.Equal(t, int64(1), meta.TotalItems, "directory ignores the requested status")
	require.Len(t, listed, 1)
	require.Equal(t, clubs[0].ID, listed[0].ID)
}

func TestClubServiceSubmitOpportunityRequiresApprovedClub(t *testing.T) {
	db := setupTestDB(t)
	admin := seedAdmin(t, db)
	clubs := seedPendingClubs(t, db, 1)
	engine := newClubEngine(t, db)
	svc := newClubService(t, db)

	req := dto.OpportunityCreateRequest{ClubID: clubs[0].ID, Title: "Match Day Steward"}
	_, err := svc.SubmitOpportunity(context.Background(), req)
	require.ErrorIs(t, err, ErrClubNotApproved)

	_, err = svc.SubmitOpportunity(context.Background(), dto.OpportunityCreateRequest{ClubID: 9999, Title: "Coach"})
	require.ErrorIs(t, err, ErrReviewTargetNotFound)

	_, err = engine.Transition(context.Background(), clubs[0].ID, models.StatusApproved, ReviewActor{ID: admin.ID, Role: models.RoleAdmin}, "")
	require.NoError(t, err)

	opportunity, err := svc.SubmitOpportunity(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, "pending", opportunity.Status)
}
