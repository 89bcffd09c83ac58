package service

import (
	"context"
	"strings"

	"github.com/bots-hq/truegrow-kashmir-connect/internal/domain/entity"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/domain/enum"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/domain/repository"
	"github.com/bots-hq/truegrow-kashmir-connect/pkg/apperror"
	"github.com/bots-hq/truegrow-kashmir-connect/pkg/pagination"
	"github.com/google/uuid"
)

// NoteService manages the shop owner's notes
type NoteService struct {
	noteRepo repository.NoteRepository
}

// NewNoteService creates a new note service
func NewNoteService(noteRepo repository.NoteRepository) *NoteService {
	return &NoteService{noteRepo: noteRepo}
}

// NoteInput is a create or full update of a note
type NoteInput struct {
	Title    string   `json:"title" validate:"required,max=255"`
	Content  string   `json:"content"`
	Tags     []string `json:"tags" validate:"max=20,dive,max=50"`
	Priority string   `json:"priority" validate:"omitempty,oneof=low medium high"`
}

// CreateNote stores a note for the shop owner in ctx
func (s *NoteService) CreateNote(ctx context.Context, input *NoteInput) (*entity.Note, error) {
	normalizeNoteInput(input)
	if err := validateStruct(input); err != nil {
		return nil, err
	}

	note := &entity.Note{}
	applyNoteInput(note, input)
	if err := s.noteRepo.Create(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

// GetNote retrieves a note by ID
func (s *NoteService) GetNote(ctx context.Context, id uuid.UUID) (*entity.Note, error) {
	note, err := s.noteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, apperror.NewNotFoundError("Note")
	}
	return note, nil
}

// UpdateNote replaces a note's content
func (s *NoteService) UpdateNote(ctx context.Context, id uuid.UUID, input *NoteInput) (*entity.Note, error) {
	normalizeNoteInput(input)
	if err := validateStruct(input); err != nil {
		return nil, err
	}
	note, err := s.GetNote(ctx, id)
	if err != nil {
		return nil, err
	}

	applyNoteInput(note, input)
	if err := s.noteRepo.Update(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

// DeleteNote removes a note
func (s *NoteService) DeleteNote(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetNote(ctx, id); err != nil {
		return err
	}
	return s.noteRepo.Delete(ctx, id)
}

// ListNotes searches notes by title, content or tag
func (s *NoteService) ListNotes(ctx context.Context, params *repository.NoteFilterParams) (*pagination.PaginatedResult[entity.Note], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()

	notes, total, err := s.noteRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(notes, pag), nil
}

func normalizeNoteInput(input *NoteInput) {
	input.Title = strings.TrimSpace(input.Title)
	input.Priority = strings.ToLower(strings.TrimSpace(input.Priority))
	input.Tags = cleanTags(input.Tags)
}

func applyNoteInput(note *entity.Note, input *NoteInput) {
	note.Title = input.Title
	note.Content = input.Content
	note.Tags = input.Tags
	note.Priority = enum.NotePriority(input.Priority)
	if note.Priority == "" {
		note.Priority = enum.NotePriorityMedium
	}
}

// cleanTags trims and lower-cases tags, dropping blanks and duplicates
func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
