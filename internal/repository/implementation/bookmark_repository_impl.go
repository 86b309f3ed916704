package implementation

import (
	"context"

	"noter-be/internal/entity"
	"noter-be/internal/mapper"
	"noter-be/internal/model"
	"noter-be/internal/repository/contract"
	"noter-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookmarkRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.BookmarkMapper
}

func NewBookmarkRepository(db *gorm.DB) contract.BookmarkRepository {
	return &BookmarkRepositoryImpl{
		db:     db,
		mapper: mapper.NewBookmarkMapper(),
	}
}

func (r *BookmarkRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *BookmarkRepositoryImpl) Insert(ctx context.Context, bookmark *entity.Bookmark) (bool, error) {
	m := r.mapper.ToModel(bookmark)
	if m.Id == uuid.Nil {
		m.Id = uuid.New()
	}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(m)
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected == 0 {
		return false, nil
	}
	*bookmark = *r.mapper.ToEntity(m)
	return true, nil
}

func (r *BookmarkRepositoryImpl) Remove(ctx context.Context, userId, noteId uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND note_id = ?", userId, noteId).
		Delete(&model.Bookmark{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *BookmarkRepositoryImpl) DeleteByNoteIDs(ctx context.Context, noteIDs []uuid.UUID) error {
	if len(noteIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("note_id IN ?", noteIDs).Delete(&model.Bookmark{}).Error
}

func (r *BookmarkRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Bookmark, error) {
	var models []*model.Bookmark
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Bookmark{}), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *BookmarkRepositoryImpl) FindNoteIDs(ctx context.Context, userId uuid.UUID, noteIDs []uuid.UUID) ([]uuid.UUID, error) {
	if len(noteIDs) == 0 {
		return nil, nil
	}
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&model.Bookmark{}).
		Where("user_id = ? AND note_id IN ?", userId, noteIDs).
		Pluck("note_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *BookmarkRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Bookmark{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
