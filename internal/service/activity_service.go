package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/spec-kit/field-activity-service/internal/domain"
	"github.com/spec-kit/field-activity-service/internal/events"
	"github.com/spec-kit/field-activity-service/internal/repository"
	apperrors "github.com/spec-kit/field-activity-service/pkg/util"
)

const recentActivityLimit = 5

// ActivityService mediates authenticated access to the activity store.
type ActivityService struct {
	activities repository.ActivityRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
	validate   *validator.Validate
}

// ActivityDependencies bundles repositories for the activity service.
type ActivityDependencies struct {
	ActivityRepo repository.ActivityRepository
	UserRepo     repository.UserRepository
	Dispatcher   events.Dispatcher
}

// NewActivityService builds the service.
func NewActivityService(deps ActivityDependencies) *ActivityService {
	return &ActivityService{
		activities: deps.ActivityRepo,
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
		validate:   validator.New(),
	}
}

// ActivityInput describes a new activity submission.
type ActivityInput struct {
	Type    domain.ActivityType
	Payload domain.ActivityPayload
	Lat     *float64
	Lng     *float64
}

// LogActivity validates and stores a new activity owned by the caller.
// Any authenticated role may log; ownership always follows the token
// identity, never the request body.
func (s *ActivityService) LogActivity(ctx context.Context, identity domain.Identity, input ActivityInput) (*domain.Activity, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	activity := &domain.Activity{
		UserID:  identity.UserID,
		Type:    input.Type,
		Payload: input.Payload,
		Lat:     input.Lat,
		Lng:     input.Lng,
	}
	if err := s.activities.Insert(ctx, activity); err != nil {
		return nil, err
	}

	s.publishLogged(ctx, identity, activity)
	return activity, nil
}

// MyLogs returns only the caller's own activities, newest-first.
func (s *ActivityService) MyLogs(ctx context.Context, identity domain.Identity) ([]domain.Activity, error) {
	return s.activities.ListByOwner(ctx, identity.UserID)
}

// DashboardStats computes the admin dashboard aggregates. The five
// sub-queries are independent reads fanned out over the same data;
// small read skew between them is acceptable.
func (s *ActivityService) DashboardStats(ctx context.Context, identity domain.Identity) (*domain.Stats, error) {
	if !identity.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	var stats domain.Stats
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.activities.CountByType(gctx, domain.ActivityTypeMeeting)
		if err != nil {
			return err
		}
		stats.Meetings = n
		return nil
	})
	g.Go(func() error {
		n, err := s.activities.CountByType(gctx, domain.ActivityTypeSale)
		if err != nil {
			return err
		}
		stats.Sales = n
		return nil
	})
	g.Go(func() error {
		n, err := s.activities.CountByType(gctx, domain.ActivityTypeSample)
		if err != nil {
			return err
		}
		stats.Samples = n
		return nil
	})
	g.Go(func() error {
		n, err := s.users.CountByRole(gctx, domain.RoleDistributor)
		if err != nil {
			return err
		}
		stats.Users = n
		return nil
	})
	g.Go(func() error {
		recent, err := s.activities.ListRecent(gctx, recentActivityLimit)
		if err != nil {
			return err
		}
		stats.Recent = recent
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &stats, nil
}

// validateInput checks the activity type, payload schema and the
// coordinate pair before anything reaches the store.
func (s *ActivityService) validateInput(input ActivityInput) error {
	if !input.Type.Valid() {
		return apperrors.NewValidationError("unknown activity type", map[string]any{"type": string(input.Type)})
	}
	if (input.Lat == nil) != (input.Lng == nil) {
		return apperrors.NewValidationError("lat and lng must be provided together", nil)
	}
	if input.Lat != nil {
		if err := s.validate.Var(*input.Lat, "latitude"); err != nil {
			return apperrors.NewValidationError("latitude out of range", map[string]any{"lat": *input.Lat})
		}
		if err := s.validate.Var(*input.Lng, "longitude"); err != nil {
			return apperrors.NewValidationError("longitude out of range", map[string]any{"lng": *input.Lng})
		}
	}
	if err := s.validate.Struct(input.Payload); err != nil {
		details := map[string]any{}
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				details[fe.Field()] = fe.Tag()
			}
		}
		return apperrors.NewValidationError("invalid activity payload", details)
	}
	return nil
}

func (s *ActivityService) publishLogged(ctx context.Context, identity domain.Identity, activity *domain.Activity) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventActivityLogged,
		ActorID:   identity.UserID,
		Timestamp: time.Now(),
		Payload: events.ActivityLoggedPayload{
			ActivityID:   activity.ID,
			ActivityType: activity.Type,
			Username:     identity.Username,
			HasLocation:  activity.HasLocation(),
		},
	})
}
