package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/core/domain"
	"github.com/riverajefer/hight-solutions-backoffice-sub001/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapabilityService_ActorHasCapability(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.NewString()
	mockRepo := new(MockUserRepository)
	service := services.NewCapabilityService(mockRepo)

	mockRepo.On("FindCapabilities", ctx, actorID).
		Return([]string{domain.CapabilityApproveExpenses, domain.CapabilityCancelOrders}, nil).Twice()

	has, err := service.ActorHasCapability(ctx, actorID, domain.CapabilityApproveExpenses)
	require.NoError(t, err)
	assert.True(t, has)

	has, err = service.ActorHasCapability(ctx, actorID, domain.CapabilityPayExpenses)
	require.NoError(t, err)
	assert.False(t, has)

	mockRepo.AssertExpectations(t)
}

func TestCapabilityService_ActorsWithCapability(t *testing.T) {
	ctx := context.Background()
	reviewer := uuid.NewString()
	mockRepo := new(MockUserRepository)
	service := services.NewCapabilityService(mockRepo)

	mockRepo.On("FindUserIDsWithCapability", ctx, domain.CapabilityReviewRequests).
		Return([]string{reviewer}, nil).Once()

	actors, err := service.ActorsWithCapability(ctx, domain.CapabilityReviewRequests)
	require.NoError(t, err)
	assert.Equal(t, []string{reviewer}, actors)
}
