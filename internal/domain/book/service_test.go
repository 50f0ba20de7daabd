package book_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/educonnect/internal/domain/book"
	"github.com/xiebiao/educonnect/internal/domain/user"
	"github.com/xiebiao/educonnect/internal/mocks"
	apperrors "github.com/xiebiao/educonnect/pkg/errors"
)

var (
	publisher = &user.User{ID: 10, Name: "Jane", OrganizationName: "Acme Press", Role: user.RolePublisher}
	other     = &user.User{ID: 11, Name: "Bob", Role: user.RolePublisher}
	admin     = &user.User{ID: 1, Name: "Root", Role: user.RoleAdmin}
)

func details() book.Details {
	return book.Details{
		Title:       "Algebra I",
		Grade:       "8",
		Subject:     "Math",
		Author:      "Euler",
		Price:       decimal.RequireFromString("19.999"),
		Description: "intro",
		CoverImage:  "http://img/a.png",
	}
}

func storedBook() *book.Book {
	return &book.Book{
		ID:            7,
		Title:         "Algebra I",
		Grade:         "8",
		Subject:       "Math",
		Author:        "Euler",
		ISBN:          "978-0",
		Price:         decimal.RequireFromString("20.00"),
		PublisherID:   publisher.ID,
		PublisherName: "Acme Press",
		Description:   "intro",
		CoverImage:    "http://img/old.png",
		Version:       2,
	}
}

func TestCreate_SnapshotsPublisherName(t *testing.T) {
	repo := new(mocks.BookRepository)
	svc := book.NewService(repo, nil)
	repo.On("ExistsByISBN", mock.Anything, "978-0").Return(false, nil)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*book.Book")).Return(nil)

	b, err := svc.Create(context.Background(), " 978-0 ", details(), publisher)
	require.NoError(t, err)
	assert.Equal(t, "Acme Press", b.PublisherName)
	assert.Equal(t, publisher.ID, b.PublisherID)
	assert.Equal(t, "20", b.Price.String())

	b, err = svc.Create(context.Background(), "978-0", details(), other)
	require.NoError(t, err)
	assert.Equal(t, "Bob", b.PublisherName)
}

func TestCreate_DuplicateISBN(t *testing.T) {
	repo := new(mocks.BookRepository)
	svc := book.NewService(repo, nil)
	repo.On("ExistsByISBN", mock.Anything, "978-0").Return(true, nil)

	_, err := svc.Create(context.Background(), "978-0", details(), publisher)

	assert.True(t, errors.Is(err, book.ErrISBNDuplicate))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreate_RejectsNonPositivePrice(t *testing.T) {
	repo := new(mocks.BookRepository)
	svc := book.NewService(repo, nil)

	d := details()
	d.Price = decimal.RequireFromString("0.001")
	_, err := svc.Create(context.Background(), "978-0", d, publisher)

	assert.True(t, errors.Is(err, book.ErrInvalidPrice))
}

func TestCreate_RequiresISBN(t *testing.T) {
	for _, isbn := range []string{"", "   "} {
		repo := new(mocks.BookRepository)
		svc := book.NewService(repo, nil)

		_, err := svc.Create(context.Background(), isbn, details(), publisher)

		assert.True(t, errors.Is(err, book.ErrISBNRequired), "isbn=%q", isbn)
		assert.True(t, errors.Is(err, apperrors.ErrInvalidParams), "isbn=%q", isbn)
		repo.AssertNotCalled(t, "ExistsByISBN", mock.Anything, mock.Anything)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	}
}

func TestUpdate_NonOwnerIsRejected(t *testing.T) {
	repo := new(mocks.BookRepository)
	svc := book.NewService(repo, nil)
	stored := storedBook()
	repo.On("FindByID", mock.Anything, uint(7)).Return(stored, nil)

	d := details()
	d.Title = "Hacked"
	_, err := svc.Update(context.Background(), 7, d, other)

	assert.True(t, errors.Is(err, book.ErrUnauthorized))
	assert.Equal(t, "Algebra I", stored.Title)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdate_AdminMayEditAnyBook(t *testing.T) {
	repo := new(mocks.BookRepository)
	svc := book.NewService(repo, nil)
	repo.On("FindByID", mock.Anything, uint(7)).Return(storedBook(), nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)

	d := details()
	d.Title = "Algebra II"
	b, err := svc.Update(context.Background(), 7, d, admin)

	require.NoError(t, err)
	assert.Equal(t, "Algebra II", b.Title)
	assert.Equal(t, "978-0", b.ISBN)
}

func TestUpdate_CoverImageOnlyReplacedWhenNonEmpty(t *testing.T) {
	repo := new(mocks.BookRepository)
	svc := book.NewService(repo, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)

	repo.On("FindByID", mock.Anything, uint(7)).Return(storedBook(), nil).Once()
	d := details()
	d.CoverImage = ""
	d.Description = ""
	b, err := svc.Update(context.Background(), 7, d, publisher)
	require.NoError(t, err)
	assert.Equal(t, "http://img/old.png", b.CoverImage)
	// 描述字段直接覆盖，空值会清空
	assert.Equal(t, "", b.Description)

	repo.On("FindByID", mock.Anything, uint(7)).Return(storedBook(), nil).Once()
	d.CoverImage = "http://img/new.png"
	b, err = svc.Update(context.Background(), 7, d, publisher)
	require.NoError(t, err)
	assert.Equal(t, "http://img/new.png", b.CoverImage)
}

func TestUpdate_NotFound(t *testing.T) {
	repo := new(mocks.BookRepository)
	svc := book.NewService(repo, nil)
	repo.On("FindByID", mock.Anything, uint(99)).Return(nil, book.ErrBookNotFound)

	_, err := svc.Update(context.Background(), 99, details(), admin)

	assert.True(t, errors.Is(err, book.ErrBookNotFound))
}

func TestDelete(t *testing.T) {
	repo := new(mocks.BookRepository)
	cache := new(mocks.BookCache)
	svc := book.NewService(repo, cache)

	repo.On("Delete", mock.Anything, uint(99)).Return(book.ErrBookNotFound)
	err := svc.Delete(context.Background(), 99)
	assert.True(t, errors.Is(err, book.ErrBookNotFound))
	cache.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)

	repo.On("Delete", mock.Anything, uint(7)).Return(nil)
	cache.On("Invalidate", mock.Anything, uint(7)).Return()
	require.NoError(t, svc.Delete(context.Background(), 7))
	cache.AssertExpectations(t)
}

func TestSearch(t *testing.T) {
	repo := new(mocks.BookRepository)
	svc := book.NewService(repo, nil)
	repo.On("Search", mock.Anything, "euler").Return([]*book.Book{storedBook()}, nil)

	books, err := svc.Search(context.Background(), "  euler ")
	require.NoError(t, err)
	assert.Len(t, books, 1)

	_, err = svc.Search(context.Background(), "   ")
	assert.True(t, errors.Is(err, book.ErrEmptyKeyword))
}

func TestGetByID_ReadThroughCache(t *testing.T) {
	repo := new(mocks.BookRepository)
	cache := new(mocks.BookCache)
	svc := book.NewService(repo, cache)
	stored := storedBook()

	cache.On("Get", mock.Anything, uint(7)).Return(nil, false).Once()
	repo.On("FindByID", mock.Anything, uint(7)).Return(stored, nil).Once()
	cache.On("Set", mock.Anything, stored).Return().Once()

	b, err := svc.GetByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, stored, b)

	cache.On("Get", mock.Anything, uint(7)).Return(stored, true).Once()
	b, err = svc.GetByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, stored, b)

	repo.AssertNumberOfCalls(t, "FindByID", 1)
	cache.AssertExpectations(t)
}
