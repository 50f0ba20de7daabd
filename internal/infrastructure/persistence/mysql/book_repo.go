package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/xiebiao/educonnect/internal/domain/book"
	apperrors "github.com/xiebiao/educonnect/pkg/errors"
)

// bookRepository 图书仓储实现(MySQL)
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

// Create 创建图书，ISBN冲突转换为ErrISBNDuplicate
// 软删除的记录仍占用唯一索引
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	model := toBookModel(b)

	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return book.ErrISBNDuplicate
		}
		return apperrors.ErrDatabaseError.WithErr(err)
	}

	b.ID = model.ID
	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	if err := conn(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.ErrDatabaseError.WithErr(err)
	}
	return toBookEntity(&model), nil
}

func (r *bookRepository) FindByIDs(ctx context.Context, ids []uint) ([]*book.Book, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var models []BookModel
	if err := conn(ctx, r.db).Where("id IN ?", ids).Find(&models).Error; err != nil {
		return nil, apperrors.ErrDatabaseError.WithErr(err)
	}
	return toBookEntities(models), nil
}

// ExistsByISBN 包含已软删除的记录，与唯一索引保持一致
func (r *bookRepository) ExistsByISBN(ctx context.Context, isbn string) (bool, error) {
	var count int64
	err := conn(ctx, r.db).Unscoped().Model(&BookModel{}).Where("isbn = ?", isbn).Count(&count).Error
	if err != nil {
		return false, apperrors.ErrDatabaseError.WithErr(err)
	}
	return count > 0, nil
}

func (r *bookRepository) FindAll(ctx context.Context) ([]*book.Book, error) {
	var models []BookModel
	if err := conn(ctx, r.db).Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, apperrors.ErrDatabaseError.WithErr(err)
	}
	return toBookEntities(models), nil
}

func (r *bookRepository) FindByPublisherID(ctx context.Context, publisherID uint) ([]*book.Book, error) {
	var models []BookModel
	err := conn(ctx, r.db).
		Where("publisher_id = ?", publisherID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.ErrDatabaseError.WithErr(err)
	}
	return toBookEntities(models), nil
}

// Search 标题、作者、学科任一包含关键词，不区分大小写，不分页不排序打分
func (r *bookRepository) Search(ctx context.Context, keyword string) ([]*book.Book, error) {
	pattern := likePattern(keyword)

	var models []BookModel
	err := conn(ctx, r.db).
		Where("LOWER(title) LIKE ? OR LOWER(author) LIKE ? OR LOWER(subject) LIKE ?", pattern, pattern, pattern).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.ErrDatabaseError.WithErr(err)
	}
	return toBookEntities(models), nil
}

// Update 乐观锁更新，ISBN和发布者不可修改
func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	db := conn(ctx, r.db)
	now := time.Now()

	result := db.Model(&BookModel{}).
		Where("id = ? AND version = ?", b.ID, b.Version).
		Updates(map[string]interface{}{
			"title":       b.Title,
			"grade":       b.Grade,
			"subject":     b.Subject,
			"author":      b.Author,
			"price":       b.Price,
			"description": b.Description,
			"cover_image": b.CoverImage,
			"version":     gorm.Expr("version + 1"),
			"updated_at":  now,
		})
	if result.Error != nil {
		return apperrors.ErrDatabaseError.WithErr(result.Error)
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := db.Model(&BookModel{}).Where("id = ?", b.ID).Count(&count).Error; err != nil {
			return apperrors.ErrDatabaseError.WithErr(err)
		}
		if count == 0 {
			return book.ErrBookNotFound
		}
		return apperrors.ErrConcurrentModification
	}

	b.Version++
	b.UpdatedAt = now
	return nil
}

// Delete 软删除
func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	result := conn(ctx, r.db).Delete(&BookModel{}, id)
	if result.Error != nil {
		return apperrors.ErrDatabaseError.WithErr(result.Error)
	}
	if result.RowsAffected == 0 {
		return book.ErrBookNotFound
	}
	return nil
}

// =========================================
// 模型转换
// =========================================

func toBookModel(b *book.Book) *BookModel {
	return &BookModel{
		ID:            b.ID,
		Title:         b.Title,
		Grade:         b.Grade,
		Subject:       b.Subject,
		Author:        b.Author,
		ISBN:          b.ISBN,
		Price:         b.Price,
		PublisherID:   b.PublisherID,
		PublisherName: b.PublisherName,
		Description:   b.Description,
		CoverImage:    b.CoverImage,
		Version:       b.Version,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

func toBookEntity(m *BookModel) *book.Book {
	return &book.Book{
		ID:            m.ID,
		Title:         m.Title,
		Grade:         m.Grade,
		Subject:       m.Subject,
		Author:        m.Author,
		ISBN:          m.ISBN,
		Price:         m.Price,
		PublisherID:   m.PublisherID,
		PublisherName: m.PublisherName,
		Description:   m.Description,
		CoverImage:    m.CoverImage,
		Version:       m.Version,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func toBookEntities(models []BookModel) []*book.Book {
	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}
	return books
}
