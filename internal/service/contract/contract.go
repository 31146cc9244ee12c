package contract

import (
	"context"
	"fmt"
	"strings"

	"helios-service/internal/domain/contract"
	xerrors "helios-service/internal/pkg/errors"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

type ContractService struct {
	repo   contract.Repository
	logger *zap.Logger
}

func NewContractService(repo contract.Repository, logger *zap.Logger) *ContractService {
	return &ContractService{repo: repo, logger: logger}
}

// CreateContract drafts a new contract with a generated contract number.
func (s *ContractService) CreateContract(ctx context.Context, req *contract.CreateContractRequest) (*contract.Contract, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("contract title is required: %w", xerrors.ErrInvalidInput)
	}
	if req.TotalAmount < 0 {
		return nil, fmt.Errorf("total amount cannot be negative: %w", xerrors.ErrInvalidInput)
	}

	c := &contract.Contract{
		ContractNumber: "CT-" + ulid.Make().String(),
		Title:          strings.TrimSpace(req.Title),
		CustomerID:     req.CustomerID,
		JobID:          req.JobID,
		TotalAmount:    req.TotalAmount,
		Status:         contract.StatusDraft,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		s.logger.Error("failed to create contract", zap.Error(err))
		return nil, err
	}

	s.logger.Info("contract drafted",
		zap.Int64("contract_id", c.ID),
		zap.String("contract_number", c.ContractNumber),
		zap.Float64("total_amount", c.TotalAmount),
	)
	return c, nil
}

func (s *ContractService) GetContract(ctx context.Context, id int64) (*contract.Contract, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ContractService) UpdateContract(ctx context.Context, id int64, req *contract.UpdateContractRequest) (*contract.Contract, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, fmt.Errorf("contract title cannot be blank: %w", xerrors.ErrInvalidInput)
		}
		c.Title = strings.TrimSpace(*req.Title)
	}
	if req.TotalAmount != nil {
		if *req.TotalAmount < 0 {
			return nil, fmt.Errorf("total amount cannot be negative: %w", xerrors.ErrInvalidInput)
		}
		if *req.TotalAmount < c.PaidAmount {
			return nil, fmt.Errorf("total amount cannot fall below the amount already paid: %w", xerrors.ErrConstraint)
		}
		c.TotalAmount = *req.TotalAmount
	}

	if err := s.repo.Update(ctx, c); err != nil {
		s.logger.Error("failed to update contract", zap.Int64("contract_id", id), zap.Error(err))
		return nil, err
	}
	return c, nil
}

// Sign stamps the signature date.
func (s *ContractService) Sign(ctx context.Context, id int64) (*contract.Contract, error) {
	return s.mutate(ctx, id, "contract signed", func(c *contract.Contract) { c.Sign() })
}

// Activate starts the engagement; a no-op unless the contract is signed.
func (s *ContractService) Activate(ctx context.Context, id int64) (*contract.Contract, error) {
	return s.mutate(ctx, id, "contract activated", func(c *contract.Contract) { c.Activate() })
}

// Complete closes the contract out.
func (s *ContractService) Complete(ctx context.Context, id int64) (*contract.Contract, error) {
	return s.mutate(ctx, id, "contract completed", func(c *contract.Contract) { c.Complete() })
}

// Cancel terminates the contract.
func (s *ContractService) Cancel(ctx context.Context, id int64) (*contract.Contract, error) {
	return s.mutate(ctx, id, "contract cancelled", func(c *contract.Contract) { c.Cancel() })
}

// Transition moves the contract through its lifecycle, validated against the
// allowed-edges table.
func (s *ContractService) Transition(ctx context.Context, id int64, rawStatus string) (*contract.Contract, error) {
	next, err := contract.ParseStatus(rawStatus)
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
		s.logger.Error("failed to persist contract transition", zap.Int64("contract_id", id), zap.Error(err))
		return nil, err
	}
	return c, nil
}

// AddPayment records a payment against the contract. The running total caps at
// the contract amount; paying the contract off completes it.
func (s *ContractService) AddPayment(ctx context.Context, id int64, amount float64) (*contract.Contract, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("payment amount must be positive: %w", xerrors.ErrInvalidInput)
	}

	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.Status == contract.StatusCancelled {
		return nil, fmt.Errorf("cannot record a payment on a cancelled contract: %w", xerrors.ErrConstraint)
	}

	c.AddPayment(amount)

	if err := s.repo.Update(ctx, c); err != nil {
		s.logger.Error("failed to persist payment", zap.Int64("contract_id", id), zap.Error(err))
		return nil, err
	}

	s.logger.Info("payment recorded",
		zap.Int64("contract_id", id),
		zap.Float64("amount", amount),
		zap.Float64("paid_amount", c.PaidAmount),
		zap.String("status", string(c.Status)),
	)
	return c, nil
}

func (s *ContractService) DeleteContract(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if !xerrors.Is(err, xerrors.ErrNotFound) {
			s.logger.Error("failed to delete contract", zap.Int64("contract_id", id), zap.Error(err))
		}
		return err
	}
	s.logger.Info("contract deleted", zap.Int64("contract_id", id))
	return nil
}

func (s *ContractService) ListContracts(ctx context.Context, filters *contract.ListFilters) ([]contract.Contract, error) {
	return s.repo.List(ctx, filters)
}

func (s *ContractService) mutate(ctx context.Context, id int64, event string, fn func(*contract.Contract)) (*contract.Contract, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	fn(c)

	if err := s.repo.Update(ctx, c); err != nil {
		s.logger.Error("failed to persist contract mutation", zap.Int64("contract_id", id), zap.Error(err))
		return nil, err
	}

	s.logger.Info(event, zap.Int64("contract_id", id), zap.String("status", string(c.Status)))
	return c, nil
}
