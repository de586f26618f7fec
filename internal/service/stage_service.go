package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"construction-stage-api/internal/domain"
	"construction-stage-api/internal/dto"
	"construction-stage-api/internal/metrics"
	"construction-stage-api/internal/repository"
	"construction-stage-api/internal/response"
)

// StageService defines the interface for construction stage business logic
type StageService interface {
	ListStages(ctx context.Context) ([]*dto.StageResponse, error)
	GetStage(ctx context.Context, id uint) (*dto.StageResponse, error)
	CreateStage(ctx context.Context, req *dto.CreateStageRequest) (*dto.StageResponse, error)
	PatchStage(ctx context.Context, id uint, req *dto.UpdateStageRequest) (*dto.StageResponse, error)
	DeleteStage(ctx context.Context, id uint) (*dto.StageResponse, error)
}

// stageServiceImpl is the implementation of StageService
type stageServiceImpl struct {
	stageRepo repository.StageRepository
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// NewStageService creates a new instance of StageService.
// metrics may be nil (tests run without a registry).
func NewStageService(stageRepo repository.StageRepository, m *metrics.Metrics, logger *zap.Logger) StageService {
	return &stageServiceImpl{
		stageRepo: stageRepo,
		metrics:   m,
		logger:    logger,
	}
}

// ListStages returns every stage, soft-deleted rows included
func (s *stageServiceImpl) ListStages(ctx context.Context) ([]*dto.StageResponse, error) {
	stages, err := s.stageRepo.FindAll(ctx)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch stages", err.Error())
	}

	responses := make([]*dto.StageResponse, len(stages))
	for i, stage := range stages {
		responses[i] = toStageResponse(stage)
	}
	return responses, nil
}

// GetStage returns a single stage by id
func (s *stageServiceImpl) GetStage(ctx context.Context, id uint) (*dto.StageResponse, error) {
	stage, err := s.stageRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError(fmt.Sprintf("Stage %d not found", id), "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch stage", err.Error())
	}
	return toStageResponse(stage), nil
}

// CreateStage validates the full payload, computes the derived duration
// and persists a new stage. Any validation failure aborts before the
// insert; the response is re-read from storage so it reflects what was
// actually persisted, not the raw input.
func (s *stageServiceImpl) CreateStage(ctx context.Context, req *dto.CreateStageRequest) (*dto.StageResponse, error) {
	// Apply defaults before validation
	unitRaw := req.DurationUnit
	if unitRaw == "" {
		unitRaw = string(domain.DurationUnitDays)
	}
	statusRaw := req.Status
	if statusRaw == "" {
		statusRaw = string(domain.StageStatusNew)
	}

	if aerr := validateName(req.Name); aerr != nil {
		return nil, aerr
	}
	start, aerr := validateStartDate(req.StartDate)
	if aerr != nil {
		return nil, aerr
	}
	var end *time.Time
	if req.EndDate != nil {
		t, aerr := validateEndDate(*req.EndDate, start)
		if aerr != nil {
			return nil, aerr
		}
		end = &t
	}
	unit, aerr := validateDurationUnit(unitRaw)
	if aerr != nil {
		return nil, aerr
	}
	if req.Color != nil {
		if aerr := validateColor(*req.Color); aerr != nil {
			return nil, aerr
		}
	}
	if req.ExternalID != nil {
		if aerr := validateExternalID(*req.ExternalID); aerr != nil {
			return nil, aerr
		}
	}
	status, aerr := validateStatus(statusRaw)
	if aerr != nil {
		return nil, aerr
	}

	// Caller-supplied duration is ignored; the stored value is always derived
	stage := &domain.Stage{
		Name:         req.Name,
		StartDate:    start,
		EndDate:      end,
		Duration:     ComputeDuration(start, end, unit),
		DurationUnit: unit,
		Color:        req.Color,
		ExternalID:   req.ExternalID,
		Status:       status,
	}

	if err := s.stageRepo.Create(ctx, stage); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create stage", err.Error())
	}

	fresh, err := s.stageRepo.FindByID(ctx, stage.ID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch created stage", err.Error())
	}

	if s.metrics != nil {
		s.metrics.IncrementStageCreated()
	}
	s.logger.Info("Stage created",
		zap.Uint("stage_id", fresh.ID),
		zap.String("name", fresh.Name),
	)

	return toStageResponse(fresh), nil
}

// PatchStage applies a partial update. The read-decide-write sequence runs
// in a single transaction so concurrent patches against the same id cannot
// lose the duration recomputation.
func (s *stageServiceImpl) PatchStage(ctx context.Context, id uint, req *dto.UpdateStageRequest) (*dto.StageResponse, error) {
	var updated *domain.Stage

	err := s.stageRepo.Transaction(ctx, func(repo repository.StageRepository) error {
		current, err := repo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return response.NewNotFoundError(fmt.Sprintf("Stage %d not found", id), "")
			}
			return response.NewAppError(response.ErrCodeInternal, "Failed to fetch stage", err.Error())
		}

		if req.IsEmpty() {
			return response.NewNoFieldsError("There are no fields to update")
		}

		writeSet, aerr := buildWriteSet(current, req)
		if aerr != nil {
			return aerr
		}

		if err := repo.UpdateFields(ctx, id, writeSet); err != nil {
			return response.NewAppError(response.ErrCodeInternal, "Failed to update stage", err.Error())
		}

		updated, err = repo.FindByID(ctx, id)
		if err != nil {
			return response.NewAppError(response.ErrCodeInternal, "Failed to fetch updated stage", err.Error())
		}
		return nil
	})
	if err != nil {
		var appErr *response.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update stage", err.Error())
	}

	s.logger.Info("Stage updated", zap.Uint("stage_id", updated.ID))
	return toStageResponse(updated), nil
}

// DeleteStage soft-deletes a stage: a single-field status write, no
// duration recomputation, row kept in place.
func (s *stageServiceImpl) DeleteStage(ctx context.Context, id uint) (*dto.StageResponse, error) {
	var updated *domain.Stage

	err := s.stageRepo.Transaction(ctx, func(repo repository.StageRepository) error {
		if _, err := repo.FindByID(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return response.NewNotFoundError(fmt.Sprintf("Stage %d not found", id), "")
			}
			return response.NewAppError(response.ErrCodeInternal, "Failed to fetch stage", err.Error())
		}

		writeSet := map[string]interface{}{columnFor("status"): domain.StageStatusDeleted}
		if err := repo.UpdateFields(ctx, id, writeSet); err != nil {
			return response.NewAppError(response.ErrCodeInternal, "Failed to delete stage", err.Error())
		}

		var err error
		updated, err = repo.FindByID(ctx, id)
		if err != nil {
			return response.NewAppError(response.ErrCodeInternal, "Failed to fetch deleted stage", err.Error())
		}
		return nil
	})
	if err != nil {
		var appErr *response.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to delete stage", err.Error())
	}

	if s.metrics != nil {
		s.metrics.IncrementStageDeleted()
	}
	s.logger.Info("Stage soft-deleted", zap.Uint("stage_id", updated.ID))
	return toStageResponse(updated), nil
}

// buildWriteSet validates every field present in the payload, resolves the
// effective (start, end, unit) triple and decides whether the derived
// duration needs a write. The returned map is keyed by storage column.
func buildWriteSet(current *domain.Stage, req *dto.UpdateStageRequest) (map[string]interface{}, *response.AppError) {
	st := &patchState{
		writeSet: make(map[string]interface{}),
		effStart: current.StartDate,
		effEnd:   current.EndDate,
		effUnit:  current.DurationUnit,
	}

	for _, field := range stageFields {
		if aerr := field.apply(req, st); aerr != nil {
			return nil, aerr
		}
	}

	// A patch that only moves startDate must not slide past a stored end
	// date the payload never mentioned.
	if st.effEnd != nil && st.effEnd.Before(st.effStart) {
		return nil, response.NewValidationError("startDate",
			"Start date must not be later than end date")
	}

	// Duration is recomputed whenever any of its three inputs moved. A
	// non-null result is written only when it differs from the stored
	// value; a null result always nulls the column out.
	if st.tripleTouched {
		newDuration := ComputeDuration(st.effStart, st.effEnd, st.effUnit)
		if st.effEnd != nil {
			if !durationEquals(current.Duration, newDuration) {
				st.writeSet["duration"] = *newDuration
			}
		} else if _, ok := st.writeSet["duration"]; !ok {
			st.writeSet["duration"] = nil
		}
	}

	return st.writeSet, nil
}

// durationEquals compares durations at storage precision. The column
// keeps four decimal places, so anything closer than half of the last
// stored digit counts as unchanged.
func durationEquals(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return math.Abs(*a-*b) < 5e-5
}

// toStageResponse converts a persisted stage to its API representation
func toStageResponse(stage *domain.Stage) *dto.StageResponse {
	resp := &dto.StageResponse{
		ID:           stage.ID,
		Name:         stage.Name,
		StartDate:    stage.StartDate.UTC().Format(timeLayout),
		Duration:     stage.Duration,
		DurationUnit: string(stage.DurationUnit),
		Color:        stage.Color,
		ExternalID:   stage.ExternalID,
		Status:       string(stage.Status),
		CreatedAt:    stage.CreatedAt.UTC().Format(timeLayout),
		UpdatedAt:    stage.UpdatedAt.UTC().Format(timeLayout),
	}
	if stage.EndDate != nil {
		v := stage.EndDate.UTC().Format(timeLayout)
		resp.EndDate = &v
	}
	return resp
}
