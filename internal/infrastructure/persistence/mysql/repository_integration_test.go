//go:build integration

package mysql

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/xiebiao/educonnect/internal/domain/book"
	"github.com/xiebiao/educonnect/internal/domain/notification"
	"github.com/xiebiao/educonnect/internal/domain/user"
	apperrors "github.com/xiebiao/educonnect/pkg/errors"
)

// 运行方式：
//
//	EDUCONNECT_TEST_MYSQL_DSN='root:pass@tcp(localhost:3306)/educonnect_test?charset=utf8mb4&parseTime=true&loc=Local' \
//	  go test -tags integration ./internal/infrastructure/persistence/mysql/
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("EDUCONNECT_TEST_MYSQL_DSN")
	if dsn == "" {
		t.Skip("未设置EDUCONNECT_TEST_MYSQL_DSN")
	}
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))
	return db
}

// suffix 避免与库里已有数据冲突
func suffix() string {
	return fmt.Sprintf("%d", time.Now().UnixNano()%1_000_000_000_000)
}

func newTestBook(isbn, author string) *book.Book {
	now := time.Now()
	return &book.Book{
		Title:         "Geometry Basics",
		Grade:         "9",
		Subject:       "Math",
		Author:        author,
		ISBN:          isbn,
		Price:         decimal.RequireFromString("18.80"),
		PublisherID:   1,
		PublisherName: "Acme Press",
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func publisherFixture() *user.User {
	return &user.User{ID: 1, Name: "Jane", OrganizationName: "Acme Press", Role: user.RolePublisher, Status: user.StatusApproved}
}

func containsBook(list []*book.Book, id uint) bool {
	for _, b := range list {
		if b.ID == id {
			return true
		}
	}
	return false
}

func TestBookRepository_SearchMatchesAuthorCaseInsensitive(t *testing.T) {
	repo := NewBookRepository(openTestDB(t))
	ctx := context.Background()
	s := suffix()

	b := newTestBook("S"+s, "Ada Lovelace"+s)
	require.NoError(t, repo.Create(ctx, b))
	t.Cleanup(func() { _ = repo.Delete(ctx, b.ID) })

	for _, keyword := range []string{"lovelace" + s, "LOVELACE" + s, "Ada Love"} {
		list, err := repo.Search(ctx, keyword)
		require.NoError(t, err)
		assert.True(t, containsBook(list, b.ID), "keyword=%q", keyword)
	}

	// 通配符按字面匹配
	list, err := repo.Search(ctx, "%"+s)
	require.NoError(t, err)
	assert.False(t, containsBook(list, b.ID))
}

func TestBookRepository_DeleteNonexistent(t *testing.T) {
	repo := NewBookRepository(openTestDB(t))
	ctx := context.Background()

	err := repo.Delete(ctx, 1<<31)
	assert.True(t, errors.Is(err, book.ErrBookNotFound), "got %v", err)

	b := newTestBook("D"+suffix(), "Euler")
	require.NoError(t, repo.Create(ctx, b))
	require.NoError(t, repo.Delete(ctx, b.ID))

	// 已软删除的再删一次也是不存在
	err = repo.Delete(ctx, b.ID)
	assert.True(t, errors.Is(err, book.ErrBookNotFound), "got %v", err)
	_, err = repo.FindByID(ctx, b.ID)
	assert.True(t, errors.Is(err, book.ErrBookNotFound), "got %v", err)
}

func TestBookRepository_DuplicateISBNIncludingSoftDeleted(t *testing.T) {
	repo := NewBookRepository(openTestDB(t))
	svc := book.NewService(repo, nil)
	ctx := context.Background()
	isbn := "U" + suffix()

	first := newTestBook(isbn, "Euler")
	require.NoError(t, repo.Create(ctx, first))

	err := repo.Create(ctx, newTestBook(isbn, "Gauss"))
	assert.True(t, errors.Is(err, book.ErrISBNDuplicate), "got %v", err)

	require.NoError(t, repo.Delete(ctx, first.ID))

	exists, err := repo.ExistsByISBN(ctx, isbn)
	require.NoError(t, err)
	assert.True(t, exists, "软删除的记录仍占用ISBN")

	err = repo.Create(ctx, newTestBook(isbn, "Gauss"))
	assert.True(t, errors.Is(err, book.ErrISBNDuplicate), "got %v", err)

	_, err = svc.Create(ctx, isbn, book.Details{
		Title: "x", Grade: "1", Subject: "x", Author: "x", Price: decimal.NewFromInt(1),
	}, publisherFixture())
	assert.True(t, errors.Is(err, book.ErrISBNDuplicate), "got %v", err)
}

func TestBookRepository_StaleVersionConflict(t *testing.T) {
	repo := NewBookRepository(openTestDB(t))
	ctx := context.Background()

	b := newTestBook("V"+suffix(), "Euler")
	require.NoError(t, repo.Create(ctx, b))
	t.Cleanup(func() { _ = repo.Delete(ctx, b.ID) })

	first, err := repo.FindByID(ctx, b.ID)
	require.NoError(t, err)
	second, err := repo.FindByID(ctx, b.ID)
	require.NoError(t, err)

	first.Title = "Geometry Basics (2nd)"
	require.NoError(t, repo.Update(ctx, first))
	assert.Equal(t, second.Version+1, first.Version)

	second.Title = "Geometry Basics (stale)"
	err = repo.Update(ctx, second)
	assert.True(t, errors.Is(err, apperrors.ErrConcurrentModification), "got %v", err)

	got, err := repo.FindByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Geometry Basics (2nd)", got.Title)

	missing := newTestBook("M"+suffix(), "Euler")
	missing.ID = 1 << 31
	err = repo.Update(ctx, missing)
	assert.True(t, errors.Is(err, book.ErrBookNotFound), "got %v", err)
}

func TestNotificationRepository_CreateBatch(t *testing.T) {
	repo := NewNotificationRepository(openTestDB(t))
	ctx := context.Background()
	userA := uint(time.Now().UnixNano() % 1_000_000_000)
	userB := userA + 1

	list := []*notification.Notification{
		notification.New(userA, notification.TypeOrder, "收到新订单", "m", "/publisher/orders"),
		notification.New(userB, notification.TypeOrder, "收到新订单", "m", "/publisher/orders"),
	}
	require.NoError(t, repo.CreateBatch(ctx, list))
	assert.NotZero(t, list[0].ID)
	assert.NotEqual(t, list[0].ID, list[1].ID)

	for _, uid := range []uint{userA, userB} {
		n, err := repo.CountUnread(ctx, uid)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	}

	// 标题超长使整批失败，不应写入任何一条（依赖STRICT_TRANS_TABLES，MySQL 8默认开启）
	userC := userB + 1
	bad := []*notification.Notification{
		notification.New(userC, notification.TypeOrder, "ok", "m", ""),
		notification.New(userC, notification.TypeOrder, strings.Repeat("x", 1000), "m", ""),
	}
	assert.Error(t, repo.CreateBatch(ctx, bad))
	n, err := repo.CountUnread(ctx, userC)
	require.NoError(t, err)
	assert.Zero(t, n)
}
