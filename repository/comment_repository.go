// Package repository holds the persistence layer for comments.
package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pqh/blog/models"
	"github.com/pqh/blog/security"
)

// ErrNotFound is returned when no comment matches the requested id.
var ErrNotFound = errors.New("comment not found")

// commentSortColumns maps the JSON property names accepted in sort parameters to columns.
var commentSortColumns = map[string]string{
	"id":         "id",
	"text":       "text",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

// CommentSortColumn resolves a sort property to its column.
func CommentSortColumn(property string) (string, bool) {
	col, ok := commentSortColumns[property]
	return col, ok
}

// CommentRepository is the persistence contract for comments.
type CommentRepository interface {
	Save(ctx context.Context, c *models.Comment) (*models.Comment, error)
	FindOne(ctx context.Context, id uint) (*models.Comment, error)
	FindAll(ctx context.Context, p Pageable) (Page[models.Comment], error)
	Delete(ctx context.Context, id uint) error
	FindByStoryID(ctx context.Context, storyID uint) ([]models.Comment, error)
	DeleteByStory(ctx context.Context, storyID uint) error
	// FindByUserIsCurrentUser returns the comments of the principal bound to ctx.
	FindByUserIsCurrentUser(ctx context.Context) ([]models.Comment, error)
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository returns a GORM backed CommentRepository.
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) withRefs(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("User").Preload("Story")
}

// Save inserts c when it has no id, otherwise overwrites the stored row (inserting it when absent).
// Referenced users and stories are never written.
func (r *commentRepository) Save(ctx context.Context, c *models.Comment) (*models.Comment, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if c.ID != 0 {
			var existing models.Comment
			err := tx.Select("id", "created_at").Take(&existing, c.ID).Error
			switch {
			case err == nil:
				c.CreatedAt = existing.CreatedAt
			case !errors.Is(err, gorm.ErrRecordNotFound):
				return err
			}
		}
		return tx.Omit(clause.Associations).Save(c).Error
	})
	if err != nil {
		return nil, fmt.Errorf("save comment: %w", err)
	}
	return c, nil
}

func (r *commentRepository) FindOne(ctx context.Context, id uint) (*models.Comment, error) {
	var c models.Comment
	if err := r.withRefs(ctx).Take(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find comment %d: %w", id, err)
	}
	return &c, nil
}

func (r *commentRepository) FindAll(ctx context.Context, p Pageable) (Page[models.Comment], error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Comment{}).Count(&total).Error; err != nil {
		return Page[models.Comment]{}, fmt.Errorf("count comments: %w", err)
	}

	q := r.withRefs(ctx)
	for _, o := range p.Sort {
		if col, ok := CommentSortColumn(o.Property); ok {
			q = q.Order(clause.OrderByColumn{Column: clause.Column{Name: col}, Desc: o.Desc})
		}
	}
	// Tie-break on id so pages never overlap.
	q = q.Order("id")

	comments := make([]models.Comment, 0, p.Size)
	if err := q.Offset(p.Offset()).Limit(p.Size).Find(&comments).Error; err != nil {
		return Page[models.Comment]{}, fmt.Errorf("list comments: %w", err)
	}
	return NewPage(comments, p, total), nil
}

// Delete removes the comment with id. Deleting an absent id is not an error.
func (r *commentRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Delete(&models.Comment{}, id).Error
	})
	if err != nil {
		return fmt.Errorf("delete comment %d: %w", id, err)
	}
	return nil
}

func (r *commentRepository) FindByStoryID(ctx context.Context, storyID uint) ([]models.Comment, error) {
	comments := []models.Comment{}
	if err := r.withRefs(ctx).Where("story_id = ?", storyID).Order("id").Find(&comments).Error; err != nil {
		return nil, fmt.Errorf("list comments of story %d: %w", storyID, err)
	}
	return comments, nil
}

// DeleteByStory removes every comment of the story with a single statement.
func (r *commentRepository) DeleteByStory(ctx context.Context, storyID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Where("story_id = ?", storyID).Delete(&models.Comment{}).Error
	})
	if err != nil {
		return fmt.Errorf("delete comments of story %d: %w", storyID, err)
	}
	return nil
}

func (r *commentRepository) FindByUserIsCurrentUser(ctx context.Context) ([]models.Comment, error) {
	comments := []models.Comment{}
	p, ok := security.PrincipalFromContext(ctx)
	if !ok {
		return comments, nil
	}
	if err := r.withRefs(ctx).Where("user_login = ?", p.Username).Order("id").Find(&comments).Error; err != nil {
		return nil, fmt.Errorf("list comments of %s: %w", p.Username, err)
	}
	return comments, nil
}
