package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "mindcare/internal/errors"
	"mindcare/internal/model"
	"mindcare/internal/repository"
)

const defaultCategory = "General Discussion"

type ForumService struct {
	forumRepo *repository.ForumRepository
}

type CreatePostInput struct {
	AuthorID    string
	Title       string
	Content     string
	Category    string
	IsAnonymous bool
	Tags        []string
}

func NewForumService(forumRepo *repository.ForumRepository) *ForumService {
	return &ForumService{forumRepo: forumRepo}
}

func (s *ForumService) List(ctx context.Context) ([]model.ForumPost, *apperrors.APIError) {
	posts, err := s.forumRepo.ListPosts(ctx)
	if err != nil {
		return nil, apperrors.Internal("failed to list posts")
	}
	return posts, nil
}

// Create accepts guests; a post without an author is always anonymous.
func (s *ForumService) Create(ctx context.Context, input CreatePostInput) (*model.ForumPost, *apperrors.APIError) {
	title := strings.TrimSpace(input.Title)
	content := strings.TrimSpace(input.Content)
	if title == "" || content == "" {
		return nil, apperrors.BadRequest("invalid_post", "title and content are required")
	}
	category := strings.TrimSpace(input.Category)
	if category == "" {
		category = defaultCategory
	}

	tags := make([]string, 0, len(input.Tags))
	for _, tag := range input.Tags {
		if trimmed := strings.TrimSpace(tag); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}

	post := model.ForumPost{
		ID:          uuid.NewString(),
		Title:       title,
		Content:     content,
		Category:    category,
		IsAnonymous: input.IsAnonymous || input.AuthorID == "",
		Tags:        tags,
		CreatedAt:   time.Now().UTC(),
	}
	if input.AuthorID != "" {
		authorID := input.AuthorID
		post.AuthorID = &authorID
	}

	if err := s.forumRepo.CreatePost(ctx, &post); err != nil {
		return nil, apperrors.Internal("failed to create post")
	}
	return s.get(ctx, post.ID)
}

func (s *ForumService) ToggleLike(ctx context.Context, userID, postID string) (*model.ForumPost, *apperrors.APIError) {
	if _, apiErr := s.get(ctx, postID); apiErr != nil {
		return nil, apiErr
	}
	if err := s.forumRepo.ToggleLike(ctx, postID, userID); err != nil {
		return nil, apperrors.Internal("failed to like post")
	}
	return s.get(ctx, postID)
}

func (s *ForumService) Reply(ctx context.Context, authorID, postID, text string) (*model.ForumPost, *apperrors.APIError) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperrors.BadRequest("invalid_reply", "text is required")
	}
	if _, apiErr := s.get(ctx, postID); apiErr != nil {
		return nil, apiErr
	}

	reply := model.ForumReply{
		ID:        uuid.NewString(),
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	if authorID != "" {
		reply.AuthorID = &authorID
	}
	if err := s.forumRepo.CreateReply(ctx, postID, &reply); err != nil {
		return nil, apperrors.Internal("failed to reply")
	}
	return s.get(ctx, postID)
}

// Delete lets authors remove their own posts; admins may remove any post.
func (s *ForumService) Delete(ctx context.Context, userID, role, postID string) *apperrors.APIError {
	post, apiErr := s.get(ctx, postID)
	if apiErr != nil {
		return apiErr
	}
	isAuthor := post.AuthorID != nil && *post.AuthorID == userID
	if role != model.RoleAdmin && !isAuthor {
		return apperrors.Forbidden("only the author can delete this post")
	}
	if err := s.forumRepo.DeletePost(ctx, postID); err != nil {
		return apperrors.Internal("failed to delete post")
	}
	return nil
}

func (s *ForumService) get(ctx context.Context, postID string) (*model.ForumPost, *apperrors.APIError) {
	post, err := s.forumRepo.GetPost(ctx, postID)
	if err == repository.ErrNotFound {
		return nil, apperrors.NotFound("post_not_found", "post not found")
	}
	if err != nil {
		return nil, apperrors.Internal("failed to get post")
	}
	return post, nil
}
