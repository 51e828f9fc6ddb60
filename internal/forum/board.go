// Package forum is the peer-support board. The backend owns the posts; the
// board keeps the last good copy in local storage and tracks new posts until
// the backend accepts them.
package forum

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"mindcare/internal/api"
	apperrors "mindcare/internal/errors"
	"mindcare/internal/localstore"
	"mindcare/internal/pending"
)

// AllCategories disables the category filter.
const AllCategories = "all"

const DefaultCategory = "General Discussion"

var Categories = []string{
	"Academic Stress",
	"Adjustment Issues",
	"Social Connections",
	"Family Dynamics",
	"Mental Health",
	"General Discussion",
}

type Backend interface {
	ForumPosts(ctx context.Context) ([]api.Post, error)
	CreatePost(ctx context.Context, post api.NewPost) (*api.Post, error)
	DeletePost(ctx context.Context, id string) error
	LikePost(ctx context.Context, id string) (*api.Post, error)
	ReplyToPost(ctx context.Context, id, text string) (*api.Post, error)
}

type Cache interface {
	GetJSON(ctx context.Context, key string, target interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, value interface{}) error
}

type Draft struct {
	Title     string
	Content   string
	Category  string
	Anonymous bool
	// Tags is a comma-separated list.
	Tags string
}

// Item is a post as shown on the board. Pending and failed items are local
// drafts that the backend has not accepted yet.
type Item struct {
	api.Post
	Status    pending.Status
	PendingID string
	Err       error
}

type Board struct {
	backend Backend
	cache   Cache
	drafts  *pending.Tracker[api.Post]

	mu    sync.RWMutex
	posts []api.Post
}

func NewBoard(backend Backend, cache Cache) *Board {
	return &Board{
		backend: backend,
		cache:   cache,
		drafts:  pending.NewTracker[api.Post](),
	}
}

// Restore fills the board from the local cache.
func (b *Board) Restore(ctx context.Context) error {
	var cached []api.Post
	ok, err := b.cache.GetJSON(ctx, localstore.KeyForumCache, &cached)
	if err != nil || !ok {
		return err
	}
	b.mu.Lock()
	b.posts = cached
	b.mu.Unlock()
	return nil
}

// Load replaces the board with the backend's posts. On failure the current
// posts, or the cached copy when the board is empty, are kept.
func (b *Board) Load(ctx context.Context) error {
	posts, err := b.backend.ForumPosts(ctx)
	if err != nil {
		b.mu.RLock()
		empty := len(b.posts) == 0
		b.mu.RUnlock()
		if empty {
			if restoreErr := b.Restore(ctx); restoreErr != nil {
				log.Printf("restore forum cache: %v", restoreErr)
			}
		}
		return err
	}
	if posts == nil {
		posts = []api.Post{}
	}

	b.mu.Lock()
	b.posts = posts
	b.mu.Unlock()
	// Accepted drafts are in posts now, or were deleted since.
	b.drafts.Prune(pending.Confirmed)

	if err := b.cache.SetJSON(ctx, localstore.KeyForumCache, posts); err != nil {
		log.Printf("write forum cache: %v", err)
	}
	return nil
}

// Posts lists local drafts first, newest first, then the backend's posts.
// category may be AllCategories or empty to show everything.
func (b *Board) Posts(category string) []Item {
	b.mu.RLock()
	posts := append([]api.Post(nil), b.posts...)
	b.mu.RUnlock()

	known := make(map[string]struct{}, len(posts))
	for _, post := range posts {
		known[post.ID] = struct{}{}
	}

	entries := b.drafts.List()
	items := make([]Item, 0, len(entries)+len(posts))
	for i := len(entries) - 1; i >= 0; i-- {
		entry := entries[i]
		if entry.Status == pending.Confirmed {
			if _, ok := known[entry.Value.ID]; ok {
				continue
			}
		}
		items = append(items, Item{Post: entry.Value, Status: entry.Status, PendingID: entry.ID, Err: entry.Err})
	}
	for _, post := range posts {
		items = append(items, Item{Post: post, Status: pending.Confirmed})
	}

	if category == "" || category == AllCategories {
		return items
	}
	filtered := items[:0]
	for _, item := range items {
		if item.Category == category {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// Create shows the draft at once and submits it. author may be nil for
// guests. The returned id tracks the draft; a failed draft can be retried or
// discarded.
func (b *Board) Create(ctx context.Context, draft Draft, author *api.User) (string, error) {
	title := strings.TrimSpace(draft.Title)
	content := strings.TrimSpace(draft.Content)
	if title == "" || content == "" {
		return "", apperrors.Validation("missing_fields", "Please fill in both title and content.")
	}
	category := draft.Category
	if category == "" {
		category = DefaultCategory
	}

	placeholder := api.Post{
		Title:       title,
		Content:     content,
		Category:    category,
		IsAnonymous: draft.Anonymous || author == nil,
		Tags:        ParseTags(draft.Tags),
		Likes:       []string{},
		Replies:     []api.Reply{},
		CreatedAt:   time.Now().UTC(),
	}
	placeholder.Author.Anonymous = placeholder.IsAnonymous
	if author != nil && !placeholder.IsAnonymous {
		placeholder.Author.Ref = api.Ref{ID: author.ID, Email: author.Email, Name: author.Name}
	}

	id := b.drafts.Begin(placeholder)
	return id, b.submit(ctx, id, placeholder)
}

// Retry resubmits a failed draft.
func (b *Board) Retry(ctx context.Context, id string) error {
	placeholder, err := b.drafts.Retry(id)
	if err != nil {
		return err
	}
	return b.submit(ctx, id, placeholder)
}

func (b *Board) Discard(id string) error {
	return b.drafts.Discard(id)
}

func (b *Board) submit(ctx context.Context, id string, placeholder api.Post) error {
	created, err := b.backend.CreatePost(ctx, api.NewPost{
		Title:       placeholder.Title,
		Content:     placeholder.Content,
		Category:    placeholder.Category,
		IsAnonymous: placeholder.IsAnonymous,
		Tags:        placeholder.Tags,
	})
	if err != nil {
		if failErr := b.drafts.Fail(id, err); failErr != nil {
			log.Printf("mark forum draft failed: %v", failErr)
		}
		return err
	}
	if err := b.drafts.Confirm(id, *created); err != nil {
		log.Printf("confirm forum draft: %v", err)
	}
	b.reload(ctx)
	return nil
}

func (b *Board) Like(ctx context.Context, postID string) error {
	if _, err := b.backend.LikePost(ctx, postID); err != nil {
		return err
	}
	b.reload(ctx)
	return nil
}

func (b *Board) Reply(ctx context.Context, postID, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return apperrors.Validation("missing_text", "Please write a reply first.")
	}
	if _, err := b.backend.ReplyToPost(ctx, postID, text); err != nil {
		return err
	}
	b.reload(ctx)
	return nil
}

func (b *Board) Delete(ctx context.Context, postID string) error {
	if err := b.backend.DeletePost(ctx, postID); err != nil {
		return err
	}
	b.reload(ctx)
	return nil
}

// reload refreshes after a successful write; the write already stands, so a
// failed refresh is only logged.
func (b *Board) reload(ctx context.Context) {
	if err := b.Load(ctx); err != nil {
		log.Printf("reload forum posts: %v", err)
	}
}

// ParseTags splits a comma-separated tag list, dropping blanks.
func ParseTags(raw string) []string {
	tags := []string{}
	for _, part := range strings.Split(raw, ",") {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
