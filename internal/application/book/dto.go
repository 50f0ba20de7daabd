package book

import (
	"time"

	"github.com/xiebiao/educonnect/internal/domain/book"
)

// BookDTO 对外的图书信息，价格固定两位小数的字符串
type BookDTO struct {
	ID            uint      `json:"id"`
	Title         string    `json:"title"`
	Grade         string    `json:"grade"`
	Subject       string    `json:"subject"`
	Author        string    `json:"author"`
	ISBN          string    `json:"isbn"`
	Price         string    `json:"price"`
	PublisherID   uint      `json:"publisherId"`
	PublisherName string    `json:"publisherName"`
	Description   string    `json:"description"`
	CoverImage    string    `json:"coverImage"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ToBookDTO 实体 → DTO
func ToBookDTO(b *book.Book) *BookDTO {
	return &BookDTO{
		ID:            b.ID,
		Title:         b.Title,
		Grade:         b.Grade,
		Subject:       b.Subject,
		Author:        b.Author,
		ISBN:          b.ISBN,
		Price:         b.Price.StringFixed(2),
		PublisherID:   b.PublisherID,
		PublisherName: b.PublisherName,
		Description:   b.Description,
		CoverImage:    b.CoverImage,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

// ToBookDTOs 列表转换，空列表返回[]
func ToBookDTOs(books []*book.Book) []*BookDTO {
	result := make([]*BookDTO, 0, len(books))
	for _, b := range books {
		result = append(result, ToBookDTO(b))
	}
	return result
}
