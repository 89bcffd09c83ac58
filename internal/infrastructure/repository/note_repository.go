package repository

import (
	"context"
	"errors"

	"github.com/bots-hq/truegrow-kashmir-connect/internal/domain/entity"
	domainRepo "github.com/bots-hq/truegrow-kashmir-connect/internal/domain/repository"
	"github.com/bots-hq/truegrow-kashmir-connect/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type noteRepository struct {
	db *gorm.DB
}

// NewNoteRepository creates a new note repository
func NewNoteRepository(db *gorm.DB) domainRepo.NoteRepository {
	return &noteRepository{db: db}
}

func (r *noteRepository) Create(ctx context.Context, note *entity.Note) error {
	ownerID, ok := GetShopOwnerID(ctx)
	if !ok {
		return errors.New("note repository: shop owner missing from context")
	}
	note.ShopOwnerID = ownerID
	return r.db.WithContext(ctx).Create(note).Error
}

func (r *noteRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Note, error) {
	var note entity.Note
	err := r.db.WithContext(ctx).Scopes(OwnerScope(ctx)).First(&note, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &note, err
}

func (r *noteRepository) Update(ctx context.Context, note *entity.Note) error {
	result := r.db.WithContext(ctx).Scopes(OwnerScope(ctx)).
		Model(&entity.Note{}).
		Where("id = ?", note.ID).
		Updates(map[string]interface{}{
			"title":    note.Title,
			"content":  note.Content,
			"tags":     note.Tags,
			"priority": note.Priority,
		})
	return rowsAffected(result)
}

func (r *noteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Scopes(OwnerScope(ctx)).Delete(&entity.Note{}, "id = ?", id)
	return rowsAffected(result)
}

func (r *noteRepository) List(ctx context.Context, params *domainRepo.NoteFilterParams) ([]entity.Note, int64, error) {
	var notes []entity.Note
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Note{}).Scopes(OwnerScope(ctx))
	if params.Search != "" {
		pattern := containsPattern(params.Search)
		query = query.Where(
			`LOWER(title) LIKE ? ESCAPE '\' OR LOWER(content) LIKE ? ESCAPE '\' OR LOWER(CAST(tags AS TEXT)) LIKE ? ESCAPE '\'`,
			pattern, pattern, pattern)
	}
	if params.Priority != nil {
		query = query.Where("priority = ?", *params.Priority)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()
	err := query.Order("updated_at DESC").
		Offset(params.Pagination.Offset()).
		Limit(params.Pagination.PerPage).
		Find(&notes).Error

	return notes, total, err
}
