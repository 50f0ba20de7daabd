package book

import (
	"context"

	"github.com/xiebiao/educonnect/internal/domain/book"
)

// ListBooksUseCase 图书列表
// PublisherID为0时返回全部图书，否则只返回该发布者的图书
type ListBooksUseCase struct {
	bookService book.Service
}

func NewListBooksUseCase(bookService book.Service) *ListBooksUseCase {
	return &ListBooksUseCase{bookService: bookService}
}

// ListBooksRequest 列表请求
type ListBooksRequest struct {
	PublisherID uint
}

func (uc *ListBooksUseCase) Execute(ctx context.Context, req ListBooksRequest) ([]*BookDTO, error) {
	var (
		books []*book.Book
		err   error
	)
	if req.PublisherID == 0 {
		books, err = uc.bookService.ListAll(ctx)
	} else {
		books, err = uc.bookService.ListByPublisher(ctx, req.PublisherID)
	}
	if err != nil {
		return nil, err
	}
	return ToBookDTOs(books), nil
}

// GetBookUseCase 图书详情（走缓存）
type GetBookUseCase struct {
	bookService book.Service
}

func NewGetBookUseCase(bookService book.Service) *GetBookUseCase {
	return &GetBookUseCase{bookService: bookService}
}

func (uc *GetBookUseCase) Execute(ctx context.Context, id uint) (*BookDTO, error) {
	b, err := uc.bookService.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToBookDTO(b), nil
}

// SearchBooksUseCase 按标题、作者、学科模糊搜索，不分页
type SearchBooksUseCase struct {
	bookService book.Service
}

func NewSearchBooksUseCase(bookService book.Service) *SearchBooksUseCase {
	return &SearchBooksUseCase{bookService: bookService}
}

func (uc *SearchBooksUseCase) Execute(ctx context.Context, keyword string) ([]*BookDTO, error) {
	books, err := uc.bookService.Search(ctx, keyword)
	if err != nil {
		return nil, err
	}
	return ToBookDTOs(books), nil
}
