package book

import (
	"context"
	"strings"

	"github.com/xiebiao/educonnect/internal/domain/user"
)

// Service 图书领域服务接口
type Service interface {
	// Create 上架图书，publisher为当前登录用户
	// 发布者名称快照取机构名，没有机构名时取姓名
	Create(ctx context.Context, isbn string, d Details, publisher *user.User) (*Book, error)

	GetByID(ctx context.Context, id uint) (*Book, error)
	GetByIDs(ctx context.Context, ids []uint) ([]*Book, error)
	ListAll(ctx context.Context) ([]*Book, error)
	ListByPublisher(ctx context.Context, publisherID uint) ([]*Book, error)
	Search(ctx context.Context, keyword string) ([]*Book, error)

	// Update 发布者本人或管理员可以修改
	Update(ctx context.Context, id uint, d Details, actor *user.User) (*Book, error)

	// ChangeCover 权限规则同Update
	ChangeCover(ctx context.Context, id uint, url string, actor *user.User) (*Book, error)

	// Delete 不校验归属，只在路由层限制为管理员
	Delete(ctx context.Context, id uint) error

	// CheckEditable 校验actor能否修改图书，用于上传封面前的预检
	CheckEditable(ctx context.Context, id uint, actor *user.User) (*Book, error)
}

type service struct {
	repo  Repository
	cache Cache
}

// NewService 创建图书领域服务
func NewService(repo Repository, cache Cache) Service {
	if cache == nil {
		cache = nopCache{}
	}
	return &service{repo: repo, cache: cache}
}

func (s *service) Create(ctx context.Context, isbn string, d Details, publisher *user.User) (*Book, error) {
	b, err := NewBook(isbn, d, publisher.ID, publisher.DisplayName())
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByISBN(ctx, b.ISBN)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrISBNDuplicate
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// GetByID 先查缓存，未命中回源并回填
func (s *service) GetByID(ctx context.Context, id uint) (*Book, error) {
	if b, ok := s.cache.Get(ctx, id); ok {
		return b, nil
	}
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, b)
	return b, nil
}

func (s *service) GetByIDs(ctx context.Context, ids []uint) ([]*Book, error) {
	return s.repo.FindByIDs(ctx, ids)
}

func (s *service) ListAll(ctx context.Context) ([]*Book, error) {
	return s.repo.FindAll(ctx)
}

func (s *service) ListByPublisher(ctx context.Context, publisherID uint) ([]*Book, error) {
	return s.repo.FindByPublisherID(ctx, publisherID)
}

func (s *service) Search(ctx context.Context, keyword string) ([]*Book, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, ErrEmptyKeyword
	}
	return s.repo.Search(ctx, keyword)
}

func (s *service) Update(ctx context.Context, id uint, d Details, actor *user.User) (*Book, error) {
	b, err := s.CheckEditable(ctx, id, actor)
	if err != nil {
		return nil, err
	}
	if err := b.ApplyUpdate(d); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, id)
	return b, nil
}

func (s *service) ChangeCover(ctx context.Context, id uint, url string, actor *user.User) (*Book, error) {
	b, err := s.CheckEditable(ctx, id, actor)
	if err != nil {
		return nil, err
	}
	b.ChangeCover(url)
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, id)
	return b, nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, id)
	return nil
}

// CheckEditable 直接读库，修改必须基于最新版本号
func (s *service) CheckEditable(ctx context.Context, id uint, actor *user.User) (*Book, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && !b.IsOwnedBy(actor.ID) {
		return nil, ErrUnauthorized
	}
	return b, nil
}

type nopCache struct{}

func (nopCache) Get(context.Context, uint) (*Book, bool) { return nil, false }
func (nopCache) Set(context.Context, *Book)              {}
func (nopCache) Invalidate(context.Context, uint)        {}
