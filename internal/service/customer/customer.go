package customer

import (
	"context"
	"fmt"
	"strings"

	"helios-service/internal/domain/customer"
	xerrors "helios-service/internal/pkg/errors"

	"go.uber.org/zap"
)

type CustomerService struct {
	repo   customer.Repository
	logger *zap.Logger
}

func NewCustomerService(repo customer.Repository, logger *zap.Logger) *CustomerService {
	return &CustomerService{repo: repo, logger: logger}
}

// CreateCustomer registers a new lead. Every customer enters the pipeline at new_lead.
func (s *CustomerService) CreateCustomer(ctx context.Context, req *customer.CreateCustomerRequest) (*customer.Customer, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("customer name is required: %w", xerrors.ErrInvalidInput)
	}

	pref := customer.ContactByPhone
	if req.Preference != "" {
		parsed, err := customer.ParseContactPreference(req.Preference)
		if err != nil {
			return nil, err
		}
		pref = parsed
	}

	c := &customer.Customer{
		Name:       strings.TrimSpace(req.Name),
		Email:      req.Email,
		Phone:      req.Phone,
		Address:    req.Address,
		LeadStatus: customer.LeadNew,
		Preference: pref,
		Notes:      req.Notes,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		s.logger.Error("failed to create customer", zap.Error(err))
		return nil, err
	}

	s.logger.Info("customer created",
		zap.Int64("customer_id", c.ID),
		zap.String("name", c.Name),
	)
	return c, nil
}

func (s *CustomerService) GetCustomer(ctx context.Context, id int64) (*customer.Customer, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *CustomerService) UpdateCustomer(ctx context.Context, id int64, req *customer.UpdateCustomerRequest) (*customer.Customer, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, fmt.Errorf("customer name cannot be blank: %w", xerrors.ErrInvalidInput)
		}
		c.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		c.Email = *req.Email
	}
	if req.Phone != nil {
		c.Phone = *req.Phone
	}
	if req.Address != nil {
		c.Address = *req.Address
	}
	if req.Preference != nil {
		pref, err := customer.ParseContactPreference(*req.Preference)
		if err != nil {
			return nil, err
		}
		c.Preference = pref
	}
	if req.Notes != nil {
		c.Notes = *req.Notes
	}

	if err := s.repo.Update(ctx, c); err != nil {
		s.logger.Error("failed to update customer", zap.Int64("customer_id", id), zap.Error(err))
		return nil, err
	}
	return c, nil
}

// TransitionLead advances the customer through the pipeline, validated against
// the allowed-edges table.
func (s *CustomerService) TransitionLead(ctx context.Context, id int64, rawStatus string) (*customer.Customer, error) {
	next, err := customer.ParseLeadStatus(rawStatus)
	if err != nil {
		return nil, err
	}

	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := c.Transition(next); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, c); err != nil {
		s.logger.Error("failed to persist lead transition", zap.Int64("customer_id", id), zap.Error(err))
		return nil, err
	}

	s.logger.Info("lead transitioned",
		zap.Int64("customer_id", id),
		zap.String("lead_status", string(next)),
	)
	return c, nil
}

// DeleteCustomer removes the customer and cascades to its jobs and contracts.
func (s *CustomerService) DeleteCustomer(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if !xerrors.Is(err, xerrors.ErrNotFound) {
			s.logger.Error("failed to delete customer", zap.Int64("customer_id", id), zap.Error(err))
		}
		return err
	}
	s.logger.Info("customer deleted", zap.Int64("customer_id", id))
	return nil
}

func (s *CustomerService) ListCustomers(ctx context.Context, filters *customer.ListFilters) ([]customer.Customer, error) {
	return s.repo.List(ctx, filters)
}

// LeadStats aggregates the pipeline over one snapshot of all customers.
func (s *CustomerService) LeadStats(ctx context.Context) (*customer.LeadStats, error) {
	customers, err := s.repo.List(ctx, &customer.ListFilters{})
	if err != nil {
		return nil, err
	}
	stats := customer.ComputeLeadStats(customers)
	return &stats, nil
}
