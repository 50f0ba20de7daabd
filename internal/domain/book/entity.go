package book

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Book 图书实体(聚合根)
// 1. 价格使用decimal，保留两位小数
// 2. ISBN全局唯一，创建后不可修改
// 3. PublisherName是创建时的快照，发布者改名后不会同步
type Book struct {
	ID            uint
	Title         string
	Grade         string
	Subject       string
	Author        string
	ISBN          string
	Price         decimal.Decimal
	PublisherID   uint
	PublisherName string
	Description   string
	CoverImage    string
	Version       uint
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Details 可编辑的图书信息
type Details struct {
	Title       string
	Grade       string
	Subject     string
	Author      string
	Price       decimal.Decimal
	Description string
	CoverImage  string
}

// NewBook 创建新图书(工厂方法)
func NewBook(isbn string, d Details, publisherID uint, publisherName string) (*Book, error) {
	isbn = strings.TrimSpace(isbn)
	if isbn == "" {
		return nil, ErrISBNRequired
	}
	price, err := normalizePrice(d.Price)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &Book{
		Title:         strings.TrimSpace(d.Title),
		Grade:         strings.TrimSpace(d.Grade),
		Subject:       strings.TrimSpace(d.Subject),
		Author:        strings.TrimSpace(d.Author),
		ISBN:          isbn,
		Price:         price,
		PublisherID:   publisherID,
		PublisherName: publisherName,
		Description:   d.Description,
		CoverImage:    strings.TrimSpace(d.CoverImage),
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// ApplyUpdate 覆盖可编辑字段
// 封面只有传了非空值才替换，其余字段（包括描述）一律覆盖。
func (b *Book) ApplyUpdate(d Details) error {
	price, err := normalizePrice(d.Price)
	if err != nil {
		return err
	}

	b.Title = strings.TrimSpace(d.Title)
	b.Grade = strings.TrimSpace(d.Grade)
	b.Subject = strings.TrimSpace(d.Subject)
	b.Author = strings.TrimSpace(d.Author)
	b.Price = price
	b.Description = d.Description
	if cover := strings.TrimSpace(d.CoverImage); cover != "" {
		b.CoverImage = cover
	}
	b.UpdatedAt = time.Now()
	return nil
}

// ChangeCover 替换封面
func (b *Book) ChangeCover(url string) {
	b.CoverImage = url
	b.UpdatedAt = time.Now()
}

// IsOwnedBy 检查图书是否由指定用户发布
func (b *Book) IsOwnedBy(userID uint) bool {
	return b.PublisherID == userID
}

// 价格保留两位小数且必须大于0
func normalizePrice(p decimal.Decimal) (decimal.Decimal, error) {
	p = p.Round(2)
	if !p.IsPositive() {
		return decimal.Zero, ErrInvalidPrice
	}
	return p, nil
}
