package job

import (
	"context"
	"fmt"
	"strings"

	"helios-service/internal/domain/job"
	xerrors "helios-service/internal/pkg/errors"

	"go.uber.org/zap"
)

type JobService struct {
	repo   job.Repository
	logger *zap.Logger
}

func NewJobService(repo job.Repository, logger *zap.Logger) *JobService {
	return &JobService{repo: repo, logger: logger}
}

// CreateJob opens a new project in pending state.
func (s *JobService) CreateJob(ctx context.Context, req *job.CreateJobRequest) (*job.SolarJob, error) {
	if strings.TrimSpace(req.CustomerName) == "" {
		return nil, fmt.Errorf("customer name is required: %w", xerrors.ErrInvalidInput)
	}
	if req.SystemSizeKWP < 0 {
		return nil, fmt.Errorf("system size cannot be negative: %w", xerrors.ErrInvalidInput)
	}
	if req.EstimatedRevenue < 0 {
		return nil, fmt.Errorf("estimated revenue cannot be negative: %w", xerrors.ErrInvalidInput)
	}

	j := &job.SolarJob{
		CustomerID:       req.CustomerID,
		CustomerName:     strings.TrimSpace(req.CustomerName),
		CustomerAddress:  req.CustomerAddress,
		SystemSizeKWP:    req.SystemSizeKWP,
		Status:           job.StatusPending,
		ScheduledDate:    req.ScheduledDate,
		EstimatedRevenue: req.EstimatedRevenue,
		Notes:            req.Notes,
	}

	if err := s.repo.Create(ctx, j); err != nil {
		s.logger.Error("failed to create job", zap.Error(err))
		return nil, err
	}

	s.logger.Info("job created",
		zap.Int64("job_id", j.ID),
		zap.String("customer_name", j.CustomerName),
		zap.Float64("system_size_kwp", j.SystemSizeKWP),
	)
	return j, nil
}

func (s *JobService) GetJob(ctx context.Context, id int64) (*job.SolarJob, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *JobService) UpdateJob(ctx context.Context, id int64, req *job.UpdateJobRequest) (*job.SolarJob, error) {
	j, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.CustomerName != nil {
		if strings.TrimSpace(*req.CustomerName) == "" {
			return nil, fmt.Errorf("customer name cannot be blank: %w", xerrors.ErrInvalidInput)
		}
		j.CustomerName = strings.TrimSpace(*req.CustomerName)
	}
	if req.CustomerAddress != nil {
		j.CustomerAddress = *req.CustomerAddress
	}
	if req.SystemSizeKWP != nil {
		if *req.SystemSizeKWP < 0 {
			return nil, fmt.Errorf("system size cannot be negative: %w", xerrors.ErrInvalidInput)
		}
		j.SystemSizeKWP = *req.SystemSizeKWP
	}
	if req.ScheduledDate != nil {
		j.ScheduledDate = req.ScheduledDate
	}
	if req.EstimatedRevenue != nil {
		if *req.EstimatedRevenue < 0 {
			return nil, fmt.Errorf("estimated revenue cannot be negative: %w", xerrors.ErrInvalidInput)
		}
		j.EstimatedRevenue = *req.EstimatedRevenue
	}
	if req.Notes != nil {
		j.Notes = *req.Notes
	}

	if err := s.repo.Update(ctx, j); err != nil {
		s.logger.Error("failed to update job", zap.Int64("job_id", id), zap.Error(err))
		return nil, err
	}
	return j, nil
}

// TransitionStatus moves the job through its lifecycle, validated against the
// allowed-edges table.
func (s *JobService) TransitionStatus(ctx context.Context, id int64, rawStatus string) (*job.SolarJob, error) {
	next, err := job.ParseStatus(rawStatus)
	if err != nil {
		return nil, err
	}

	j, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := j.Transition(next); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, j); err != nil {
		s.logger.Error("failed to persist job transition", zap.Int64("job_id", id), zap.Error(err))
		return nil, err
	}

	s.logger.Info("job transitioned",
		zap.Int64("job_id", id),
		zap.String("status", string(next)),
	)
	return j, nil
}

// DeleteJob removes the job and cascades to its installations.
func (s *JobService) DeleteJob(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if !xerrors.Is(err, xerrors.ErrNotFound) {
			s.logger.Error("failed to delete job", zap.Int64("job_id", id), zap.Error(err))
		}
		return err
	}
	s.logger.Info("job deleted", zap.Int64("job_id", id))
	return nil
}

func (s *JobService) ListJobs(ctx context.Context, filters *job.ListFilters) ([]job.SolarJob, error) {
	return s.repo.List(ctx, filters)
}

// Statistics aggregates the job funnel over one snapshot of all jobs.
func (s *JobService) Statistics(ctx context.Context) (*job.Statistics, error) {
	jobs, err := s.repo.List(ctx, &job.ListFilters{})
	if err != nil {
		return nil, err
	}
	stats := job.ComputeStatistics(jobs)
	return &stats, nil
}
