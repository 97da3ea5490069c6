package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/thealbion75/sport-community-api/internal/dto"
	"github.com/thealbion75/sport-community-api/internal/models"
	"github.com/thealbion75/sport-community-api/internal/repository"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Club{},
		&models.VolunteerOpportunity{},
		&models.ContentReport{},
		&models.ReviewLog{},
	))
	return db
}

func seedAdmin(t *testing.T, db *gorm.DB) models.User {
	t.Helper()
	admin := models.User{Name: "Alex Admin", Email: "admin-" + t.Name() + "@example.com", Role: models.RoleAdmin, Status: models.StatusActive}
	require.NoError(t, db.Create(&admin).Error)
	return admin
}

func seedPendingClubs(t *testing.T, db *gorm.DB, n int) []models.Club {
	t.Helper()
	clubs := make([]models.Club, 0, n)
	for i := 0; i < n; i++ {
		club := models.Club{
			ReferenceID:  fmt.Sprintf("%s-%d", t.Name(), i),
			Name:         fmt.Sprintf("Club %02d", i),
			ContactEmail: fmt.Sprintf("club%02d-%s@example.com", i, t.Name()),
			Status:       models.StatusPending,
		}
		require.NoError(t, db.Create(&club).Error)
		clubs = append(clubs, club)
	}
	return clubs
}

func newClubEngine(t *testing.T, db *gorm.DB) *ReviewEngine[models.Club] {
	t.Helper()
	store := repository.NewReviewStore[models.Club](db, "name", "contact_email", "description")
	return NewReviewEngine("club", models.ApplicationStatuses, store,
		repository.NewReviewLogRepository(db), repository.NewUserRepository(db),
		nil, nil, 0, zerolog.Nop())
}

func TestTransitionApprovesAndAudits(t *testing.T) {
	db := setupTestDB(t)
	admin := seedAdmin(t, db)
	club := seedPendingClubs(t, db, 1)[0]
	engine := newClubEngine(t, db)

	updated, err := engine.Transition(context.Background(), club.ID, models.StatusApproved, ReviewActor{ID: admin.ID, Role: models.RoleAdmin}, "ok")
	require.NoError(t, err)
	require.Equal(t, models.StatusApproved, updated.Status)

	history, err := engine.History(context.Background(), club.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Equal(t, "approved", history[0].Action)
	require.Equal(t, admin.ID, history[0].ActorID)
	require.Equal(t, "ok", history[0].Notes)
	require.Equal(t, "pending", history[0].Metadata["previous_status"])
}

func TestTransitionRepeatDecisionAuditsAgain(t *testing.T) {
	db := setupTestDB(t)
	admin := seedAdmin(t, db)
	club := seedPendingClubs(t, db, 1)[0]
	engine := newClubEngine(t, db)
	actor := ReviewActor{ID: admin.ID, Role: models.RoleAdmin}

	_, err := engine.Transition(context.Background(), club.ID, models.StatusApproved, actor, "first")
	require.NoError(t, err)
	updated, err := engine.Transition(context.Background(), club.ID, models.StatusApproved, actor, "second look")
	require.NoError(t, err)
	require.Equal(t, models.StatusApproved, updated.Status)

	history, err := engine.History(context.Background(), club.ID)
	require.NoError(t, err)
	require.Len(t, history, 2, "every decision is logged, even repeats")
	require.Equal(t, "approved", history[1].Metadata["previous_status"])
}

func TestTransitionReopenIsAudited(t *testing.T) {
	db := setupTestDB(t)
	admin := seedAdmin(t, db)
	club := seedPendingClubs(t, db, 1)[0]
	engine := newClubEngine(t, db)
	actor := ReviewActor{ID: admin.ID, Role: models.RoleAdmin}

	_, err := engine.Transition(context.Background(), club.ID, models.StatusRejected, actor, "incomplete")
	require.NoError(t, err)
	updated, err := engine.Transition(context.Background(), club.ID, models.StatusPending, actor, "reopened on appeal")
	require.NoError(t, err)
	require.Equal(t, models.StatusPending, updated.Status)

	history, err := engine.History(context.Background(), club.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	require.Equal(t, "pending", history[1].Action)
	require.Equal(t, "rejected", history[1].Metadata["previous_status"])
}

func TestTransitionFailureModes(t *testing.T) {
	db := setupTestDB(t)
	admin := seedAdmin(t, db)
	member := models.User{Name: "Mia Member", Email: "member-" + t.Name() + "@example.com", Role: models.RoleMember, Status: models.StatusActive}
	require.NoError(t, db.Create(&member).Error)
	club := seedPendingClubs(t, db, 1)[0]
	engine := newClubEngine(t, db)

	_, err := engine.Transition(context.Background(), 9999, models.StatusApproved, ReviewActor{ID: admin.ID}, "")
	require.ErrorIs(t, err, ErrReviewTargetNotFound)

	_, err = engine.Transition(context.Background(), club.ID, models.StatusApproved, ReviewActor{ID: member.ID}, "")
	require.ErrorIs(t, err, ErrReviewUnauthorized)

	_, err = engine.Transition(context.Background(), club.ID, models.StatusApproved, ReviewActor{ID: 4242}, "")
	require.ErrorIs(t, err, ErrReviewUnauthorized)

	_, err = engine.Transition(context.Background(), club.ID, models.ReviewStatus("suspended"), ReviewActor{ID: admin.ID}, "")
	require.ErrorIs(t, err, ErrInvalidReviewStatus)

	// No audit entries for failed transitions.
	history, err := engine.History(context.Background(), club.ID)
	require.NoError(t, err)
	require.Empty(t, history)
}

// conflictStore simulates losing the optimistic-concurrency race for selected
// targets while delegating everything else to the real store.
type conflictStore[T models.Reviewable] struct {
	repository.ReviewStore[T]
	conflicts map[uint]struct{}
}

func (s *conflictStore[T]) ApplyTransition(ctx context.Context, id uint, from, to models.ReviewStatus, entry *models.ReviewLog) (T, error) {
	if _, ok := s.conflicts[id]; ok {
		var zero T
		return zero, repository.ErrStatusConflict
	}
	return s.ReviewStore.ApplyTransition(ctx, id, from, to, entry)
}

func TestTransitionConflictSurfacesToCaller(t *testing.T) {
	db := setupTestDB(t)
	admin := seedAdmin(t, db)
	club := seedPendingClubs(t, db, 1)[0]

	store := &conflictStore[models.Club]{
		ReviewStore: repository.NewReviewStore[models.Club](db, "name"),
		conflicts:   map[uint]struct{}{club.ID: {}},
	}
	engine := NewReviewEngine[models.Club]("club", models.ApplicationStatuses, store,
		repository.NewReviewLogRepository(db), repository.NewUserRepository(db),
		nil, nil, 0, zerolog.Nop())

	_, err := engine.Transition(context.Background(), club.ID, models.StatusApproved, ReviewActor{ID: admin.ID}, "")
	require.ErrorIs(t, err, ErrReviewConflict)
}

func TestBulkTransitionPartitionsInput(t *testing.T) {
	db := setupTestDB(t)
	admin := seedAdmin(t, db)
	clubs := seedPendingClubs(t, db, 3)
	engine := newClubEngine(t, db)

	ids := []uint{clubs[0].ID, clubs[1].ID, clubs[1].ID, 9999, clubs[2].ID}
	result, err := engine.BulkTransition(context.Background(), ids, models.StatusApproved, ReviewActor{ID: admin.ID, Role: models.RoleAdmin}, "batch")
	require.NoError(t, err)

	require.Equal(t, []uint{clubs[0].ID, clubs[1].ID, clubs[2].ID}, result.Successful, "input order, duplicates collapsed")
	require.Len(t, result.Failed, 1)
	require.Equal(t, uint(9999), result.Failed[0].ID)
	require.Equal(t, "not_found", result.Failed[0].Error)
	require.Equal(t, 4, len(result.Successful)+len(result.Failed), "partition covers the de-duplicated input")

	for _, club := range clubs {
		history, err := engine.History(context.Background(), club.ID)
		require.NoError(t, err)
		require.Len(t, history, 1)
	}
}

func TestBulkTransitionIsolatesConflictItems(t *testing.T) {
	db := setupTestDB(t)
	admin := seedAdmin(t, db)
	clubs := seedPendingClubs(t, db, 3)

	// B was decided by another admin just before the batch ran.
	store := &conflictStore[models.Club]{
		ReviewStore: repository.NewReviewStore[models.Club](db, "name"),
		conflicts:   map[uint]struct{}{clubs[1].ID: {}},
	}
	engine := NewReviewEngine[models.Club]("club", models.ApplicationStatuses, store,
		repository.NewReviewLogRepository(db), repository.NewUserRepository(db),
		nil, nil, 0, zerolog.Nop())

	result, err := engine.BulkTransition(context.Background(), []uint{clubs[0].ID, clubs[1].ID, clubs[2].ID}, models.StatusApproved, ReviewActor{ID: admin.ID}, "")
	require.NoError(t, err)
	require.Equal(t, []uint{clubs[0].ID, clubs[2].ID}, result.Successful)
	require.Len(t, result.Failed, 1)
	require.Equal(t, clubs[1].ID, result.Failed[0].ID)
	require.Equal(t, "conflict", result.Failed[0].Error)
}

func TestBulkTransitionValidation(t *testing.T) {
	db := setupTestDB(t)
	admin := seedAdmin(t, db)
	engine := newClubEngine(t, db)

	_, err := engine.BulkTransition(context.Background(), nil, models.StatusApproved, ReviewActor{ID: admin.ID}, "")
	require.ErrorIs(t, err, ErrEmptyBulkRequest)

	_, err = engine.BulkTransition(context.Background(), []uint{1}, models.ReviewStatus("bogus"), ReviewActor{ID: admin.ID}, "")
	require.ErrorIs(t, err, ErrInvalidReviewStatus)
}

func TestListPagination(t *testing.T) {
	db := setupTestDB(t)
	seedPendingClubs(t, db, 25)
	engine := newClubEngine(t, db)

	clubs, meta, err := engine.List(context.Background(), dto.ReviewListRequest{Status: "pending", Page: 2, PageSize: 10}, nil)
	require.NoError(t, err)
	require.Len(t, clubs, 10)
	require.Equal(t, int64(25), meta.TotalItems)
	require.Equal(t, 3, meta.TotalPages)

	clubs, meta, err = engine.List(context.Background(), dto.ReviewListRequest{Status: "all", Page: 4, PageSize: 10}, nil)
	require.NoError(t, err)
	require.Empty(t, clubs, "page beyond the end is an empty page, not an error")
	require.Equal(t, int64(25), meta.TotalItems)

	_, _, err = engine.List(context.Background(), dto.ReviewListRequest{PageSize: 0}, nil)
	require.ErrorIs(t, err, ErrInvalidPageSize)

	_, _, err = engine.List(context.Background(), dto.ReviewListRequest{Status: "suspended", PageSize: 10}, nil)
	require.ErrorIs(t, err, ErrInvalidReviewStatus)
}

func TestStatusCountsDerivedFromEntities(t *testing.T) {
	db := setupTestDB(t)
	admin := seedAdmin(t, db)
	clubs := seedPendingClubs(t, db, 5)
	engine := newClubEngine(t, db)
	actor := ReviewActor{ID: admin.ID, Role: models.RoleAdmin}

	counts, total, err := engine.StatusCounts(context.Background(), nil)
	require.NoError(t, err)
	require.Equal(t, int64(5), counts[models.StatusPending])
	require.Equal(t, int64(0), counts[models.StatusApproved])
	require.Equal(t, int64(5), total)

	for _, club := range clubs[:2] {
		_, err := engine.Transition(context.Background(), club.ID, models.StatusApproved, actor, "")
		require.NoError(t, err)
	}

	counts, total, err = engine.StatusCounts(context.Background(), nil)
	require.NoError(t, err)
	require.Equal(t, int64(3), counts[models.StatusPending])
	require.Equal(t, int64(2), counts[models.StatusApproved])
	require.Equal(t, int64(5), total, "total unchanged by decisions")
}

func TestStatusCountsUsesCache(t *testing.T) {
	db := setupTestDB(t)
	seedPendingClubs(t, db, 2)

	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := repository.NewReviewStore[models.Club](db, "name")
	engine := NewReviewEngine[models.Club]("club", models.ApplicationStatuses, store,
		repository.NewReviewLogRepository(db), repository.NewUserRepository(db),
		nil, cache, 0, zerolog.Nop())

	counts, total, err := engine.StatusCounts(context.Background(), nil)
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Equal(t, int64(2), counts[models.StatusPending])

	// A write landing inside the TTL is not visible until the key expires.
	require.NoError(t, db.Create(&models.Club{ReferenceID: "late", Name: "Late Club", ContactEmail: "late@example.com", Status: models.StatusPending}).Error)
	_, total, err = engine.StatusCounts(context.Background(), nil)
	require.NoError(t, err)
	require.Equal(t, int64(2), total)

	mr.FastForward(engine.cacheTTL * 2)
	_, total, err = engine.StatusCounts(context.Background(), nil)
	require.NoError(t, err)
	require.Equal(t, int64(3), total)
}

func TestHistoryStableAcrossReads(t *testing.T) {
	db := setupTestDB(t)
	admin := seedAdmin(t, db)
	club := seedPendingClubs(t, db, 1)[0]
	engine := newClubEngine(t, db)
	actor := ReviewActor{ID: admin.ID, Role: models.RoleAdmin}

	_, err := engine.Transition(context.Background(), club.ID, models.StatusApproved, actor, "ok")
	require.NoError(t, err)
	_, err = engine.Transition(context.Background(), club.ID, models.StatusPending, actor, "reopen")
	require.NoError(t, err)

	first, err := engine.History(context.Background(), club.ID)
	require.NoError(t, err)
	second, err := engine.History(context.Background(), club.ID)
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, "approved", first[0].Action)
	require.Equal(t, "pending", first[1].Action)
}

func TestUserSuspensionEngine(t *testing.T) {
	db := setupTestDB(t)
	admin := seedAdmin(t, db)
	member := models.User{Name: "Sam Member", Email: "sam-" + t.Name() + "@example.com", Role: models.RoleMember, Status: models.StatusActive}
	require.NoError(t, db.Create(&member).Error)

	store := repository.NewReviewStore[models.User](db, "name", "email")
	engine := NewReviewEngine("user", models.AccountStatuses, store,
		repository.NewReviewLogRepository(db), repository.NewUserRepository(db),
		nil, nil, 0, zerolog.Nop())
	actor := ReviewActor{ID: admin.ID, Role: models.RoleAdmin}

	suspended, err := engine.Transition(context.Background(), member.ID, models.StatusSuspended, actor, "abusive messages")
	require.NoError(t, err)
	require.Equal(t, models.StatusSuspended, suspended.Status)

	// Application statuses are outside the account status set.
	_, err = engine.Transition(context.Background(), member.ID, models.StatusApproved, actor, "")
	require.ErrorIs(t, err, ErrInvalidReviewStatus)

	history, err := engine.History(context.Background(), member.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Equal(t, "suspended", history[0].Action)
	require.Equal(t, "active", history[0].Metadata["previous_status"])
}

func TestFailureKindMapping(t *testing.T) {
	require.Equal(t, "not_found", FailureKind(ErrReviewTargetNotFound))
	require.Equal(t, "unauthorized", FailureKind(ErrReviewUnauthorized))
	require.Equal(t, "conflict", FailureKind(ErrReviewConflict))
	require.Equal(t, "validation", FailureKind(ErrInvalidReviewStatus))
	require.Equal(t, "store_unavailable", FailureKind(fmt.Errorf("dial tcp: connection refused")))
}
