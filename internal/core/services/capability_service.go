package services

import (
	"context"
	"slices"

	portsrepo "github.com/riverajefer/hight-solutions-backoffice-sub001/internal/core/ports/repositories"
	portssvc "github.com/riverajefer/hight-solutions-backoffice-sub001/internal/core/ports/services"
)

// CapabilityService resolves actor permissions from the user store.
type CapabilityService struct {
	userRepo portsrepo.UserRepository
}

// NewCapabilityService creates a new CapabilityService.
func NewCapabilityService(userRepo portsrepo.UserRepository) *CapabilityService {
	return &CapabilityService{userRepo: userRepo}
}

var _ portssvc.CapabilitySvcFacade = (*CapabilityService)(nil)

// ActorHasCapability reports whether the actor holds the named capability.
func (s *CapabilityService) ActorHasCapability(ctx context.Context, actorID, capability string) (bool, error) {
	capabilities, err := s.userRepo.FindCapabilities(ctx, actorID)
	if err != nil {
		return false, err
	}
	return slices.Contains(capabilities, capability), nil
}

// ActorCapabilities returns every capability granted to the actor.
func (s *CapabilityService) ActorCapabilities(ctx context.Context, actorID string) ([]string, error) {
	return s.userRepo.FindCapabilities(ctx, actorID)
}

// ActorsWithCapability returns the IDs of every actor holding the capability.
func (s *CapabilityService) ActorsWithCapability(ctx context.Context, capability string) ([]string, error) {
	return s.userRepo.FindUserIDsWithCapability(ctx, capability)
}
