package service

import (
	"context"
	"strings"

	"github.com/bots-hq/truegrow-kashmir-connect/internal/domain/entity"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/domain/repository"
	"github.com/bots-hq/truegrow-kashmir-connect/pkg/apperror"
	"github.com/bots-hq/truegrow-kashmir-connect/pkg/pagination"
	"github.com/google/uuid"
)

// FeedService runs the community feed shared by shop owners and customers
type FeedService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
}

// NewFeedService creates a new feed service
func NewFeedService(postRepo repository.PostRepository, userRepo repository.UserRepository) *FeedService {
	return &FeedService{postRepo: postRepo, userRepo: userRepo}
}

// PostInput is a new feed post
type PostInput struct {
	Content  string   `json:"content" validate:"required,max=2000"`
	ImageURL *string  `json:"image" validate:"omitempty,url"`
	Tags     []string `json:"tags" validate:"max=10,dive,max=50"`
}

// ListPosts returns the newest posts first, optionally narrowed to one tag
func (s *FeedService) ListPosts(ctx context.Context, params *pagination.PaginationParams, tag string) (*pagination.PaginatedResult[entity.Post], error) {
	if params == nil {
		params = pagination.DefaultPagination()
	}
	params.Validate()

	posts, total, err := s.postRepo.List(ctx, params, strings.ToLower(strings.TrimSpace(tag)))
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(posts, pag), nil
}

// CreatePost publishes a post as the given user. Author name, role and
// location come from the profile, not the request.
func (s *FeedService) CreatePost(ctx context.Context, authorID uuid.UUID, input *PostInput) (*entity.Post, error) {
	input.Content = strings.TrimSpace(input.Content)
	input.Tags = cleanTags(input.Tags)
	if err := validateStruct(input); err != nil {
		return nil, err
	}

	author, err := s.userRepo.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, apperror.NewNotFoundError("User")
	}

	post := &entity.Post{
		AuthorID:   author.ID,
		AuthorName: author.DisplayBusinessName(),
		UserType:   author.Role,
		Content:    input.Content,
		ImageURL:   input.ImageURL,
		Tags:       input.Tags,
	}
	if author.Location != nil {
		post.Location = *author.Location
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// LikePost adds one like to a post
func (s *FeedService) LikePost(ctx context.Context, id uuid.UUID) (*entity.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, apperror.NewNotFoundError("Post")
	}
	if err := s.postRepo.IncrementLikes(ctx, id); err != nil {
		return nil, err
	}
	post.Likes++
	return post, nil
}
