package service

import (
	"context"
	"fmt"
	"log/slog"

	"tripledger/internal/middleware"
	"tripledger/internal/models"
	"tripledger/internal/storage"
)

// TripService owns the trip roster and the membership gate the expense
// service relies on. Roster management is deliberately thin: create and
// read. The ledger only ever asks "who is on this trip" and "is this
// user a member/admin".
type TripService struct {
	store storage.Store
}

// NewTripService creates a new TripService with the given storage backend.
func NewTripService(store storage.Store) *TripService {
	return &TripService{store: store}
}

// Create creates a trip. The authenticated user becomes its admin; the
// given members join with the member role.
func (s *TripService) Create(ctx context.Context, name string, memberIDs []string) (*models.Trip, error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	if name == "" {
		return nil, fmt.Errorf("trip name is required")
	}

	trip := &models.Trip{
		Name:      name,
		CreatedBy: userID,
		Members:   []models.TripMember{{UserID: userID, Role: models.RoleAdmin}},
	}
	for _, id := range memberIDs {
		if id == userID || trip.IsMember(id) {
			continue
		}
		trip.Members = append(trip.Members, models.TripMember{UserID: id, Role: models.RoleMember})
	}

	if err := s.store.CreateTrip(ctx, trip); err != nil {
		slog.Error("CreateTrip failed", "error", err)
		return nil, err
	}

	slog.Info("Trip created", "trip_id", trip.ID, "members_count", len(trip.Members))
	return trip, nil
}

// Get retrieves a trip. Only members may see it.
func (s *TripService) Get(ctx context.Context, tripID string) (*models.Trip, error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return nil, ErrUnauthenticated
	}

	trip, err := s.store.GetTrip(ctx, tripID)
	if err != nil {
		slog.Warn("GetTrip failed", "trip_id", tripID, "error", err)
		return nil, err
	}
	if !trip.IsMember(userID) {
		return nil, fmt.Errorf("%w: you must be a member of this trip", ErrNotAuthorized)
	}

	return trip, nil
}
