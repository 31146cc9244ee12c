package installation

import (
	"context"
	"time"

	"helios-service/internal/domain/installation"
	xerrors "helios-service/internal/pkg/errors"

	"go.uber.org/zap"
)

type InstallationService struct {
	repo   installation.Repository
	logger *zap.Logger
}

func NewInstallationService(repo installation.Repository, logger *zap.Logger) *InstallationService {
	return &InstallationService{repo: repo, logger: logger}
}

// CreateInstallation schedules a new crew visit.
func (s *InstallationService) CreateInstallation(ctx context.Context, req *installation.CreateInstallationRequest) (*installation.Installation, error) {
	i := &installation.Installation{
		JobID:         req.JobID,
		VendorID:      req.VendorID,
		ScheduledDate: req.ScheduledDate,
		Status:        installation.StatusScheduled,
		Crew:          req.Crew,
		Notes:         req.Notes,
	}

	if err := s.repo.Create(ctx, i); err != nil {
		s.logger.Error("failed to create installation", zap.Error(err))
		return nil, err
	}

	s.logger.Info("installation scheduled",
		zap.Int64("installation_id", i.ID),
		zap.Time("scheduled_date", i.ScheduledDate),
	)
	return i, nil
}

func (s *InstallationService) GetInstallation(ctx context.Context, id int64) (*installation.Installation, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *InstallationService) UpdateInstallation(ctx context.Context, id int64, req *installation.UpdateInstallationRequest) (*installation.Installation, error) {
	i, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.VendorID != nil {
		i.VendorID = req.VendorID
	}
	if req.ScheduledDate != nil {
		i.ScheduledDate = *req.ScheduledDate
	}
	if req.Crew != nil {
		i.Crew = *req.Crew
	}
	if req.QualityChecked != nil {
		i.QualityChecked = *req.QualityChecked
	}
	if req.Notes != nil {
		i.Notes = *req.Notes
	}

	if err := s.repo.Update(ctx, i); err != nil {
		s.logger.Error("failed to update installation", zap.Int64("installation_id", id), zap.Error(err))
		return nil, err
	}
	return i, nil
}

// Start marks the crew on site and stamps the start time.
func (s *InstallationService) Start(ctx context.Context, id int64) (*installation.Installation, error) {
	i, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	i.Start()

	if err := s.repo.Update(ctx, i); err != nil {
		s.logger.Error("failed to persist installation start", zap.Int64("installation_id", id), zap.Error(err))
		return nil, err
	}

	s.logger.Info("installation started", zap.Int64("installation_id", id))
	return i, nil
}

// Complete closes the installation with the crew's closing notes.
func (s *InstallationService) Complete(ctx context.Context, id int64, notes string) (*installation.Installation, error) {
	i, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	i.Complete(notes)

	if err := s.repo.Update(ctx, i); err != nil {
		s.logger.Error("failed to persist installation completion", zap.Int64("installation_id", id), zap.Error(err))
		return nil, err
	}

	s.logger.Info("installation completed", zap.Int64("installation_id", id))
	return i, nil
}

// UpdateProgress records completion percentage; hitting 100 while in progress
// completes the installation.
func (s *InstallationService) UpdateProgress(ctx context.Context, id int64, pct float64) (*installation.Installation, error) {
	i, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	i.UpdateProgress(pct)

	if err := s.repo.Update(ctx, i); err != nil {
		s.logger.Error("failed to persist installation progress", zap.Int64("installation_id", id), zap.Error(err))
		return nil, err
	}
	return i, nil
}

// Transition moves the installation through its lifecycle, validated against
// the allowed-edges table.
func (s *InstallationService) Transition(ctx context.Context, id int64, rawStatus string) (*installation.Installation, error) {
	next, err := installation.ParseStatus(rawStatus)
	if err != nil {
		return nil, err
	}

	i, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := i.Transition(next); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, i); err != nil {
		s.logger.Error("failed to persist installation transition", zap.Int64("installation_id", id), zap.Error(err))
		return nil, err
	}
	return i, nil
}

func (s *InstallationService) DeleteInstallation(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if !xerrors.Is(err, xerrors.ErrNotFound) {
			s.logger.Error("failed to delete installation", zap.Int64("installation_id", id), zap.Error(err))
		}
		return err
	}
	s.logger.Info("installation deleted", zap.Int64("installation_id", id))
	return nil
}

func (s *InstallationService) ListInstallations(ctx context.Context, filters *installation.ListFilters) ([]installation.Installation, error) {
	return s.repo.List(ctx, filters)
}

// Upcoming returns installations scheduled within the next days days, soonest
// first. It feeds the calendar view.
func (s *InstallationService) Upcoming(ctx context.Context, days int) ([]installation.Installation, error) {
	if days <= 0 {
		days = 7
	}
	from := time.Now()
	to := from.AddDate(0, 0, days)
	return s.repo.List(ctx, &installation.ListFilters{
		ScheduledFrom: &from,
		ScheduledTo:   &to,
		SortBy:        "scheduled_date",
		SortOrder:     "asc",
	})
}
