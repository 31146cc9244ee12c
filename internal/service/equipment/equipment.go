package equipment

import (
	"context"
	"fmt"
	"strings"

	"helios-service/internal/domain/equipment"
	xerrors "helios-service/internal/pkg/errors"

	"go.uber.org/zap"
)

type EquipmentService struct {
	repo   equipment.Repository
	logger *zap.Logger
}

func NewEquipmentService(repo equipment.Repository, logger *zap.Logger) *EquipmentService {
	return &EquipmentService{repo: repo, logger: logger}
}

// CreateEquipment registers a new inventory record with its initial quantity.
func (s *EquipmentService) CreateEquipment(ctx context.Context, req *equipment.CreateEquipmentRequest) (*equipment.Equipment, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("equipment name is required: %w", xerrors.ErrInvalidInput)
	}
	category, err := equipment.ParseCategory(req.Category)
	if err != nil {
		return nil, err
	}
	if req.Quantity < 0 {
		return nil, fmt.Errorf("initial quantity cannot be negative: %w", xerrors.ErrInvalidInput)
	}
	if req.UnitPrice < 0 {
		return nil, fmt.Errorf("unit price cannot be negative: %w", xerrors.ErrInvalidInput)
	}
	if req.LowStockThreshold < 0 {
		return nil, fmt.Errorf("low stock threshold cannot be negative: %w", xerrors.ErrInvalidInput)
	}

	e := &equipment.Equipment{
		Name:              strings.TrimSpace(req.Name),
		Category:          category,
		Brand:             req.Brand,
		Model:             req.Model,
		Quantity:          req.Quantity,
		UnitPrice:         req.UnitPrice,
		LowStockThreshold: req.LowStockThreshold,
		WarrantyMonths:    req.WarrantyMonths,
		Supplier:          req.Supplier,
	}

	if err := s.repo.Create(ctx, e); err != nil {
		s.logger.Error("failed to create equipment", zap.Error(err))
		return nil, err
	}

	s.logger.Info("equipment created",
		zap.Int64("equipment_id", e.ID),
		zap.String("name", e.Name),
		zap.Int("quantity", e.Quantity),
	)
	return e, nil
}

func (s *EquipmentService) GetEquipment(ctx context.Context, id int64) (*equipment.Equipment, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *EquipmentService) UpdateEquipment(ctx context.Context, id int64, req *equipment.UpdateEquipmentRequest) (*equipment.Equipment, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, fmt.Errorf("equipment name cannot be blank: %w", xerrors.ErrInvalidInput)
		}
		e.Name = strings.TrimSpace(*req.Name)
	}
	if req.Category != nil {
		category, err := equipment.ParseCategory(*req.Category)
		if err != nil {
			return nil, err
		}
		e.Category = category
	}
	if req.Brand != nil {
		e.Brand = *req.Brand
	}
	if req.Model != nil {
		e.Model = *req.Model
	}
	if req.Quantity != nil {
		// The raw setter has no floor, so negative input is rejected here.
		if *req.Quantity < 0 {
			return nil, fmt.Errorf("quantity cannot be negative: %w", xerrors.ErrInvalidInput)
		}
		e.SetQuantity(*req.Quantity)
	}
	if req.UnitPrice != nil {
		if *req.UnitPrice < 0 {
			return nil, fmt.Errorf("unit price cannot be negative: %w", xerrors.ErrInvalidInput)
		}
		e.UnitPrice = *req.UnitPrice
	}
	if req.LowStockThreshold != nil {
		if *req.LowStockThreshold < 0 {
			return nil, fmt.Errorf("low stock threshold cannot be negative: %w", xerrors.ErrInvalidInput)
		}
		e.LowStockThreshold = *req.LowStockThreshold
	}
	if req.WarrantyMonths != nil {
		e.WarrantyMonths = *req.WarrantyMonths
	}
	if req.Supplier != nil {
		e.Supplier = *req.Supplier
	}

	if err := s.repo.Update(ctx, e); err != nil {
		s.logger.Error("failed to update equipment", zap.Int64("equipment_id", id), zap.Error(err))
		return nil, err
	}
	return e, nil
}

// AdjustStock applies a signed delta, floored at zero.
func (s *EquipmentService) AdjustStock(ctx context.Context, id int64, delta int) (*equipment.Equipment, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	e.AdjustStock(delta)

	if err := s.repo.Update(ctx, e); err != nil {
		s.logger.Error("failed to persist stock adjustment", zap.Int64("equipment_id", id), zap.Error(err))
		return nil, err
	}

	s.logger.Info("stock adjusted",
		zap.Int64("equipment_id", id),
		zap.Int("delta", delta),
		zap.Int("quantity", e.Quantity),
	)
	return e, nil
}

func (s *EquipmentService) DeleteEquipment(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if !xerrors.Is(err, xerrors.ErrNotFound) {
			s.logger.Error("failed to delete equipment", zap.Int64("equipment_id", id), zap.Error(err))
		}
		return err
	}
	s.logger.Info("equipment deleted", zap.Int64("equipment_id", id))
	return nil
}

func (s *EquipmentService) ListEquipment(ctx context.Context, filters *equipment.ListFilters) ([]equipment.Equipment, error) {
	return s.repo.List(ctx, filters)
}

// Statistics aggregates the inventory valuation over one snapshot of all items.
func (s *EquipmentService) Statistics(ctx context.Context) (*equipment.Statistics, error) {
	items, err := s.repo.List(ctx, &equipment.ListFilters{})
	if err != nil {
		return nil, err
	}
	stats := equipment.ComputeStatistics(items)
	return &stats, nil
}
