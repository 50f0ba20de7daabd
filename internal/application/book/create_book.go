package book

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/educonnect/internal/domain/book"
	"github.com/xiebiao/educonnect/internal/domain/user"
	"github.com/xiebiao/educonnect/pkg/tracing"
)

// CreateBookUseCase 上架图书
// 发布者信息从库中重新读取，保证名称快照是最新的机构名
type CreateBookUseCase struct {
	bookService book.Service
	userService user.Service
}

func NewCreateBookUseCase(bookService book.Service, userService user.Service) *CreateBookUseCase {
	return &CreateBookUseCase{bookService: bookService, userService: userService}
}

// CreateBookRequest 上架请求
type CreateBookRequest struct {
	PublisherID uint
	ISBN        string
	Title       string
	Grade       string
	Subject     string
	Author      string
	Price       decimal.Decimal
	Description string
	CoverImage  string
}

func (uc *CreateBookUseCase) Execute(ctx context.Context, req CreateBookRequest) (_ *BookDTO, err error) {
	ctx, span := tracing.Start(ctx, "CreateBook")
	defer func() { tracing.End(span, err) }()

	publisher, err := uc.userService.GetByID(ctx, req.PublisherID)
	if err != nil {
		return nil, err
	}

	b, err := uc.bookService.Create(ctx, req.ISBN, book.Details{
		Title:       req.Title,
		Grade:       req.Grade,
		Subject:     req.Subject,
		Author:      req.Author,
		Price:       req.Price,
		Description: req.Description,
		CoverImage:  req.CoverImage,
	}, publisher)
	if err != nil {
		return nil, err
	}
	return ToBookDTO(b), nil
}
