package book

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/xiebiao/educonnect/internal/application/upload"
	"github.com/xiebiao/educonnect/internal/domain/book"
	"github.com/xiebiao/educonnect/internal/domain/user"
	"github.com/xiebiao/educonnect/internal/infrastructure/storage"
	"github.com/xiebiao/educonnect/pkg/saga"
)

// Actor 当前操作者，来自Token
type Actor struct {
	UserID uint
	Role   string
}

func (a Actor) toUser() *user.User {
	return &user.User{ID: a.UserID, Role: user.Role(a.Role)}
}

// UpdateBookUseCase 修改图书信息，发布者本人或管理员
type UpdateBookUseCase struct {
	bookService book.Service
}

func NewUpdateBookUseCase(bookService book.Service) *UpdateBookUseCase {
	return &UpdateBookUseCase{bookService: bookService}
}

// UpdateBookRequest 修改请求，CoverImage为空时保留原封面
type UpdateBookRequest struct {
	BookID      uint
	Actor       Actor
	Title       string
	Grade       string
	Subject     string
	Author      string
	Price       decimal.Decimal
	Description string
	CoverImage  string
}

func (uc *UpdateBookUseCase) Execute(ctx context.Context, req UpdateBookRequest) (*BookDTO, error) {
	b, err := uc.bookService.Update(ctx, req.BookID, book.Details{
		Title:       req.Title,
		Grade:       req.Grade,
		Subject:     req.Subject,
		Author:      req.Author,
		Price:       req.Price,
		Description: req.Description,
		CoverImage:  req.CoverImage,
	}, req.Actor.toUser())
	if err != nil {
		return nil, err
	}
	return ToBookDTO(b), nil
}

// DeleteBookUseCase 删除图书（路由限制为管理员）
type DeleteBookUseCase struct {
	bookService book.Service
}

func NewDeleteBookUseCase(bookService book.Service) *DeleteBookUseCase {
	return &DeleteBookUseCase{bookService: bookService}
}

func (uc *DeleteBookUseCase) Execute(ctx context.Context, id uint) error {
	return uc.bookService.Delete(ctx, id)
}

// UploadCoverUseCase 上传封面
// 先校验权限再上传；更新图书失败时删除已上传的文件
type UploadCoverUseCase struct {
	bookService book.Service
	store       storage.ObjectStore
	maxSize     int64
	log         *zap.Logger
}

func NewUploadCoverUseCase(bookService book.Service, store storage.ObjectStore, maxSize int64, log *zap.Logger) *UploadCoverUseCase {
	return &UploadCoverUseCase{bookService: bookService, store: store, maxSize: maxSize, log: log}
}

// UploadCoverRequest 上传封面请求
type UploadCoverRequest struct {
	BookID uint
	Actor  Actor
	File   upload.File
}

func (uc *UploadCoverUseCase) Execute(ctx context.Context, req UploadCoverRequest) (*BookDTO, error) {
	if err := req.File.Validate(uc.maxSize); err != nil {
		return nil, err
	}
	actor := req.Actor.toUser()
	if _, err := uc.bookService.CheckEditable(ctx, req.BookID, actor); err != nil {
		return nil, err
	}

	key := req.File.ObjectKey("covers", req.BookID)
	var (
		url     string
		updated *book.Book
	)
	err := saga.New("book-cover", uc.log).
		AddStep("put-object",
			func(ctx context.Context) error {
				var err error
				url, err = uc.store.Put(ctx, key, req.File.Reader, req.File.Size, req.File.ContentType)
				return err
			},
			func(ctx context.Context) error {
				return uc.store.Delete(ctx, key)
			},
		).
		AddStep("update-book",
			func(ctx context.Context) error {
				var err error
				updated, err = uc.bookService.ChangeCover(ctx, req.BookID, url, actor)
				return err
			},
			nil,
		).
		Execute(ctx)
	if err != nil {
		return nil, err
	}
	return ToBookDTO(updated), nil
}
