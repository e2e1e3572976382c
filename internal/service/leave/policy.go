package leave

import (
	"context"
	"fmt"

	"github.com/onsite-hq/onsite-backend-go/internal/domain/leave"
)

type PolicyService struct {
	leave.PolicyRepository
	leave.OverrideRepository
}

func NewPolicyService(policyRepository leave.PolicyRepository, overrideRepository leave.OverrideRepository) *PolicyService {
	return &PolicyService{
		PolicyRepository:   policyRepository,
		OverrideRepository: overrideRepository,
	}
}

// GetPolicy implements leave.PolicyService.
func (s *PolicyService) GetPolicy(ctx context.Context, orgID string) (leave.PolicyResponse, error) {
	policy, err := s.PolicyRepository.GetByOrgID(ctx, orgID)
	if err != nil {
		return leave.PolicyResponse{}, err
	}
	return leave.ToPolicyResponse(policy), nil
}

// UpsertPolicy implements leave.PolicyService.
func (s *PolicyService) UpsertPolicy(ctx context.Context, orgID string, req leave.UpsertPolicyRequest) (leave.PolicyResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.PolicyResponse{}, err
	}

	policy := leave.LeavePolicy{
		OrgID:               orgID,
		AnnualAllowance:     req.AnnualAllowance,
		CarryoverDays:       req.CarryoverDays,
		LeaveYearStartMonth: req.LeaveYearStartMonth,
		LeaveYearStartDay:   req.LeaveYearStartDay,
	}

	saved, err := s.PolicyRepository.Upsert(ctx, policy)
	if err != nil {
		return leave.PolicyResponse{}, fmt.Errorf("failed to upsert leave policy: %w", err)
	}
	return leave.ToPolicyResponse(saved), nil
}

// SetAllowanceOverride implements leave.PolicyService.
func (s *PolicyService) SetAllowanceOverride(ctx context.Context, orgID string, req leave.SetOverrideRequest) (leave.AllowanceOverride, error) {
	if err := req.Validate(); err != nil {
		return leave.AllowanceOverride{}, err
	}

	override := leave.AllowanceOverride{
		UserID:        req.UserID,
		OrgID:         orgID,
		Year:          req.Year,
		AllowanceDays: req.AllowanceDays,
	}

	saved, err := s.OverrideRepository.Upsert(ctx, override)
	if err != nil {
		return leave.AllowanceOverride{}, fmt.Errorf("failed to upsert allowance override: %w", err)
	}
	return saved, nil
}
