package repository

import (
	"context"

	"gorm.io/gorm"

	"construction-stage-api/internal/database"
	"construction-stage-api/internal/domain"
)

// StageRepository defines the interface for construction stage data access
type StageRepository interface {
	FindAll(ctx context.Context) ([]*domain.Stage, error)
	FindByID(ctx context.Context, id uint) (*domain.Stage, error)
	Create(ctx context.Context, stage *domain.Stage) error
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error
	CountByStatusNot(ctx context.Context, status domain.StageStatus) (int64, error)
	Transaction(ctx context.Context, fn func(repo StageRepository) error) error
}

// stageRepositoryImpl is the GORM implementation of StageRepository
type stageRepositoryImpl struct {
	handle *database.Handle
}

// NewStageRepository creates a repository over an established connection
func NewStageRepository(db *gorm.DB) StageRepository {
	return &stageRepositoryImpl{handle: database.NewHandle(db)}
}

// NewStageRepositoryFromHandle creates a repository over a swappable
// connection handle. Queries fail with database.ErrNotConnected until
// the handle is populated, then succeed without a rebuild.
func NewStageRepositoryFromHandle(handle *database.Handle) StageRepository {
	return &stageRepositoryImpl{handle: handle}
}

func (r *stageRepositoryImpl) conn() (*gorm.DB, error) {
	db := r.handle.Get()
	if db == nil {
		return nil, database.ErrNotConnected
	}
	return db, nil
}

// FindAll returns every stage, soft-deleted rows included, ordered by id
func (r *stageRepositoryImpl) FindAll(ctx context.Context) ([]*domain.Stage, error) {
	db, err := r.conn()
	if err != nil {
		return nil, err
	}
	var stages []*domain.Stage
	if err := db.WithContext(ctx).
		Order("id ASC").
		Find(&stages).Error; err != nil {
		return nil, err
	}
	return stages, nil
}

// FindByID finds a stage by id
func (r *stageRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.Stage, error) {
	db, err := r.conn()
	if err != nil {
		return nil, err
	}
	var stage domain.Stage
	if err := db.WithContext(ctx).
		Where("id = ?", id).
		First(&stage).Error; err != nil {
		return nil, err
	}
	return &stage, nil
}

// Create inserts a new stage; the generated id is written back to stage.ID
func (r *stageRepositoryImpl) Create(ctx context.Context, stage *domain.Stage) error {
	db, err := r.conn()
	if err != nil {
		return err
	}
	if err := db.WithContext(ctx).Create(stage).Error; err != nil {
		return err
	}
	return nil
}

// UpdateFields applies a column-keyed write set to a single row.
// Returns gorm.ErrRecordNotFound if the id does not resolve.
func (r *stageRepositoryImpl) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	db, err := r.conn()
	if err != nil {
		return err
	}
	tx := db.WithContext(ctx).
		Model(&domain.Stage{}).
		Where("id = ?", id).
		Updates(fields)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountByStatusNot counts stages whose status differs from the given one
func (r *stageRepositoryImpl) CountByStatusNot(ctx context.Context, status domain.StageStatus) (int64, error) {
	db, err := r.conn()
	if err != nil {
		return 0, err
	}
	var count int64
	if err := db.WithContext(ctx).
		Model(&domain.Stage{}).
		Where("status <> ?", status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Transaction runs fn against a repository bound to a single database
// transaction. The patch read-decide-write sequence goes through this to
// rule out lost updates between the read and the write.
func (r *stageRepositoryImpl) Transaction(ctx context.Context, fn func(repo StageRepository) error) error {
	db, err := r.conn()
	if err != nil {
		return err
	}
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&stageRepositoryImpl{handle: database.NewHandle(tx)})
	})
}
