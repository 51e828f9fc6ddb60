package repository

import (
	"context"
	"database/sql"
	"fmt"

	"mindcare/internal/model"
)

type ForumRepository struct {
	db *sql.DB
}

func NewForumRepository(db *sql.DB) *ForumRepository {
	return &ForumRepository{db: db}
}

const postSelect = `SELECT p.id, p.author_id, p.title, p.content, p.category, p.is_anonymous,
		p.tags, p.created_at, u.email, u.role
	FROM forum_posts p
	LEFT JOIN users u ON u.id = p.author_id`

func (r *ForumRepository) CreatePost(ctx context.Context, post *model.ForumPost) error {
	tags, err := encodeList(post.Tags)
	if err != nil {
		return err
	}
	var authorID interface{}
	if post.AuthorID != nil {
		authorID = *post.AuthorID
	}

	_, err = r.db.ExecContext(
		ctx,
		`INSERT INTO forum_posts (id, author_id, title, content, category, is_anonymous, tags, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		post.ID,
		authorID,
		post.Title,
		post.Content,
		post.Category,
		post.IsAnonymous,
		tags,
		formatTime(post.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("create post: %w", err)
	}
	return nil
}

func (r *ForumRepository) GetPost(ctx context.Context, id string) (*model.ForumPost, error) {
	post, err := scanPost(r.db.QueryRowContext(ctx, postSelect+` WHERE p.id = ?`, id))
	if err != nil {
		return nil, err
	}
	posts := []model.ForumPost{*post}
	if err := r.attach(ctx, posts); err != nil {
		return nil, err
	}
	return &posts[0], nil
}

// ListPosts returns every post, newest first, with likes and replies attached.
func (r *ForumRepository) ListPosts(ctx context.Context) ([]model.ForumPost, error) {
	rows, err := r.db.QueryContext(ctx, postSelect+` ORDER BY p.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	posts := make([]model.ForumPost, 0)
	for rows.Next() {
		post, scanErr := scanPost(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		posts = append(posts, *post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate posts: %w", err)
	}

	if err := r.attach(ctx, posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *ForumRepository) CountPosts(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM forum_posts`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return count, nil
}

func (r *ForumRepository) DeletePost(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM forum_posts WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

// ToggleLike adds the user's like, or removes it when already present.
func (r *ForumRepository) ToggleLike(ctx context.Context, postID, userID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM forum_likes WHERE post_id = ? AND user_id = ?`, postID, userID)
	if err != nil {
		return fmt.Errorf("remove like: %w", err)
	}
	if removed, _ := result.RowsAffected(); removed > 0 {
		return nil
	}
	if _, err := r.db.ExecContext(ctx, `INSERT INTO forum_likes (post_id, user_id) VALUES (?, ?)`, postID, userID); err != nil {
		return fmt.Errorf("add like: %w", err)
	}
	return nil
}

func (r *ForumRepository) CreateReply(ctx context.Context, postID string, reply *model.ForumReply) error {
	var authorID interface{}
	if reply.AuthorID != nil {
		authorID = *reply.AuthorID
	}
	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO forum_replies (id, post_id, author_id, text, created_at) VALUES (?, ?, ?, ?, ?)`,
		reply.ID,
		postID,
		authorID,
		reply.Text,
		formatTime(reply.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("create reply: %w", err)
	}
	return nil
}

func (r *ForumRepository) attach(ctx context.Context, posts []model.ForumPost) error {
	if len(posts) == 0 {
		return nil
	}
	index := make(map[string]int, len(posts))
	for i := range posts {
		index[posts[i].ID] = i
	}

	likeRows, err := r.db.QueryContext(ctx, `SELECT post_id, user_id FROM forum_likes`)
	if err != nil {
		return fmt.Errorf("list likes: %w", err)
	}
	defer likeRows.Close()
	for likeRows.Next() {
		var postID, userID string
		if err := likeRows.Scan(&postID, &userID); err != nil {
			return fmt.Errorf("scan like: %w", err)
		}
		if i, ok := index[postID]; ok {
			posts[i].Likes = append(posts[i].Likes, userID)
		}
	}
	if err := likeRows.Err(); err != nil {
		return fmt.Errorf("iterate likes: %w", err)
	}

	replyRows, err := r.db.QueryContext(
		ctx,
		`SELECT r.id, r.post_id, r.author_id, r.text, r.created_at, u.email
		 FROM forum_replies r
		 LEFT JOIN users u ON u.id = r.author_id
		 ORDER BY r.created_at`,
	)
	if err != nil {
		return fmt.Errorf("list replies: %w", err)
	}
	defer replyRows.Close()
	for replyRows.Next() {
		var reply model.ForumReply
		var postID, createdAt string
		var authorID, email sql.NullString
		if err := replyRows.Scan(&reply.ID, &postID, &authorID, &reply.Text, &createdAt, &email); err != nil {
			return fmt.Errorf("scan reply: %w", err)
		}
		reply.Author = model.AnonymousAuthor
		if authorID.Valid {
			value := authorID.String
			reply.AuthorID = &value
			reply.Author = model.UserRef{ID: value, Email: email.String}
		}
		if reply.CreatedAt, err = parseTime(createdAt); err != nil {
			return fmt.Errorf("parse reply created_at: %w", err)
		}
		if i, ok := index[postID]; ok {
			posts[i].Replies = append(posts[i].Replies, reply)
		}
	}
	return replyRows.Err()
}

func scanPost(s scanner) (*model.ForumPost, error) {
	var post model.ForumPost
	var authorID, email, role sql.NullString
	var tags, createdAt string
	err := s.Scan(
		&post.ID,
		&authorID,
		&post.Title,
		&post.Content,
		&post.Category,
		&post.IsAnonymous,
		&tags,
		&createdAt,
		&email,
		&role,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan post: %w", err)
	}

	post.Author = model.AnonymousAuthor
	if authorID.Valid {
		value := authorID.String
		post.AuthorID = &value
		if !post.IsAnonymous {
			post.Author = model.UserRef{ID: value, Email: email.String, Role: role.String}
		}
	}
	if post.Tags, err = decodeList(tags); err != nil {
		return nil, fmt.Errorf("post tags: %w", err)
	}
	if post.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parse post created_at: %w", err)
	}
	post.Likes = []string{}
	post.Replies = []model.ForumReply{}
	return &post, nil
}
