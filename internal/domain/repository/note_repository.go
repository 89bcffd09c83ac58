package repository

import (
	"context"

	"github.com/bots-hq/truegrow-kashmir-connect/internal/domain/entity"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/domain/enum"
	"github.com/bots-hq/truegrow-kashmir-connect/pkg/pagination"
	"github.com/google/uuid"
)

// NoteRepository persists the owner's notes, scoped by ctx
type NoteRepository interface {
	Create(ctx context.Context, note *entity.Note) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Note, error)
	Update(ctx context.Context, note *entity.Note) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *NoteFilterParams) ([]entity.Note, int64, error)
}

// NoteFilterParams matches title, content or tags against Search
type NoteFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Priority   *enum.NotePriority
}
