package service

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"
	"strings"
	"time"

	"github.com/postboard/postboard/internal/models"
)

// createAttempts bounds how often CreatePost tries a transient failure.
const createAttempts = 2

// BlogRepository defines the persistence operations needed by the BlogService.
type BlogRepository interface {
	// ListPosts returns every post.
	ListPosts(ctx context.Context) ([]models.BlogPost, error)
	// GetPost returns one post or models.ErrNotFound.
	GetPost(ctx context.Context, id int64) (*models.BlogPost, error)
	// InsertPost stores a post and returns its new id.
	InsertPost(ctx context.Context, p models.BlogPost) (int64, error)
	// UpdatePost overwrites title, category, body and date of an existing post.
	UpdatePost(ctx context.Context, p models.BlogPost) error
	// DeletePost removes a post by id.
	DeletePost(ctx context.Context, id int64) error
}

// BlogService implements blog post business logic.
type BlogService struct {
	// repo is the underlying persistence repository.
	repo BlogRepository
	now  func() time.Time
}

// NewBlogService constructs a BlogService with the provided BlogRepository.
func NewBlogService(repo BlogRepository) *BlogService {
	return &BlogService{repo: repo, now: time.Now}
}

// ListPosts returns the posts matching the category filter.
// An empty filter or models.NoFilter returns every post.
func (s *BlogService) ListPosts(ctx context.Context, filter string) ([]models.BlogPost, error) {
	posts, err := s.repo.ListPosts(ctx)
	if err != nil {
		return nil, err
	}
	if filter == "" || filter == models.NoFilter {
		return posts, nil
	}
	filtered := make([]models.BlogPost, 0, len(posts))
	for _, p := range posts {
		if p.Category == filter {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

// CreatePost stamps the current time and stores a new post.
// Transient connection failures are retried once; anything else is returned.
func (s *BlogService) CreatePost(ctx context.Context, creatorName, creatorID, title, body, category string) (int64, error) {
	if creatorID == "" {
		return 0, models.ErrForbidden
	}
	p := models.BlogPost{
		CreatorName: creatorName,
		CreatorID:   creatorID,
		Title:       title,
		Body:        body,
		DateCreated: s.stamp(),
		Category:    category,
	}

	var err error
	for attempt := 0; attempt < createAttempts; attempt++ {
		var id int64
		id, err = s.repo.InsertPost(ctx, p)
		if err == nil {
			return id, nil
		}
		if !transient(err) || ctx.Err() != nil {
			break
		}
	}
	return 0, err
}

// EditPost returns the post to pre-fill the edit form.
// Only the creator may edit a post.
func (s *BlogService) EditPost(ctx context.Context, actorID string, id int64) (*models.BlogPost, error) {
	return s.owned(ctx, actorID, id)
}

// UpdatePost overwrites title, category and body of the actor's post and
// re-stamps its date.
func (s *BlogService) UpdatePost(ctx context.Context, actorID string, id int64, title, category, body string) error {
	p, err := s.owned(ctx, actorID, id)
	if err != nil {
		return err
	}
	p.Title = title
	p.Category = category
	p.Body = body
	p.DateCreated = s.stamp()
	return s.repo.UpdatePost(ctx, *p)
}

// DeletePost removes the actor's post. A post that does not exist is
// treated as already deleted.
func (s *BlogService) DeletePost(ctx context.Context, actorID string, id int64) error {
	if _, err := s.owned(ctx, actorID, id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil
		}
		return err
	}
	return s.repo.DeletePost(ctx, id)
}

// SetFilter stores the category filter on the session. A blank category
// resets it to models.NoFilter.
func (s *BlogService) SetFilter(sess *models.Session, category string) {
	category = strings.TrimSpace(category)
	if category == "" {
		category = models.NoFilter
	}
	sess.CategoryFilter = category
}

func (s *BlogService) owned(ctx context.Context, actorID string, id int64) (*models.BlogPost, error) {
	if actorID == "" {
		return nil, models.ErrForbidden
	}
	p, err := s.repo.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.OwnedBy(actorID) {
		return nil, models.ErrForbidden
	}
	return p, nil
}

func (s *BlogService) stamp() string {
	return s.now().Format(models.DateLayout)
}

func transient(err error) bool {
	if errors.Is(err, driver.ErrBadConn) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
