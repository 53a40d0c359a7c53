package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/postboard/postboard/internal/models"
)

const postColumns = `blog_id, creator_name, creator_user_id, title, body, date_created, category`

// BlogRepository implements blog post persistence.
type BlogRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewBlogRepository creates a new BlogRepository using the provided *sql.DB.
func NewBlogRepository(db *sql.DB) *BlogRepository {
	return &BlogRepository{DB: db}
}

// ListPosts returns every post ordered by id. No filtering happens here.
func (r *BlogRepository) ListPosts(ctx context.Context) ([]models.BlogPost, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+postColumns+` FROM blogs ORDER BY blog_id`)
	if err != nil {
		return nil, queryFailure("list posts", err)
	}
	defer rows.Close()

	var posts []models.BlogPost
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, queryFailure("scan post", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, queryFailure("list posts", err)
	}
	return posts, nil
}

// GetPost fetches a single post by id.
// It returns models.ErrNotFound if the id does not exist.
func (r *BlogRepository) GetPost(ctx context.Context, id int64) (*models.BlogPost, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+postColumns+` FROM blogs WHERE blog_id = $1`, id)
	p, err := scanPost(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, queryFailure("get post", err)
	}
	return &p, nil
}

// InsertPost stores a new post and returns the id assigned by the database.
func (r *BlogRepository) InsertPost(ctx context.Context, p models.BlogPost) (int64, error) {
	var id int64
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO blogs (creator_name, creator_user_id, title, body, date_created, category)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING blog_id
	`, p.CreatorName, p.CreatorID, p.Title, p.Body, p.DateCreated, p.Category).Scan(&id)
	if err != nil {
		return 0, queryFailure("insert post", err)
	}
	return id, nil
}

// UpdatePost overwrites the mutable fields of a post: title, category, body
// and date. Creator fields are never touched.
// It returns models.ErrNotFound if no row matched.
func (r *BlogRepository) UpdatePost(ctx context.Context, p models.BlogPost) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE blogs SET title = $1, category = $2, body = $3, date_created = $4 WHERE blog_id = $5`,
		p.Title, p.Category, p.Body, p.DateCreated, p.ID,
	)
	if err != nil {
		return queryFailure("update post", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return queryFailure("update post", err)
	}
	if n == 0 {
		return models.ErrNotFound
	}
	return nil
}

// DeletePost removes a post by id. Deleting a missing id is not an error.
func (r *BlogRepository) DeletePost(ctx context.Context, id int64) error {
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM blogs WHERE blog_id = $1`, id); err != nil {
		return queryFailure("delete post", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPost(s scanner) (models.BlogPost, error) {
	var (
		p                    models.BlogPost
		creatorName, creator sql.NullString
		date, category       sql.NullString
	)
	if err := s.Scan(&p.ID, &creatorName, &creator, &p.Title, &p.Body, &date, &category); err != nil {
		return models.BlogPost{}, err
	}
	p.CreatorName = creatorName.String
	p.CreatorID = creator.String
	p.DateCreated = date.String
	p.Category = category.String
	return p, nil
}
