package user_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/xiebiao/educonnect/internal/domain/user"
	"github.com/xiebiao/educonnect/internal/mocks"
	apperrors "github.com/xiebiao/educonnect/pkg/errors"
)

func TestMain(m *testing.M) {
	restore := user.SetHashCost(bcrypt.MinCost)
	defer restore()
	m.Run()
}

func hashed(t *testing.T, plain string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func registerParams(role user.Role) user.RegisterParams {
	return user.RegisterParams{
		Name:             "  Green Valley  ",
		Email:            " Admin@School.EDU ",
		Password:         "secret1",
		Role:             role,
		OrganizationName: "Green Valley High",
	}
}

func TestRegister_SchoolIsApprovedImmediately(t *testing.T) {
	repo := new(mocks.UserRepository)
	svc := user.NewService(repo)

	repo.On("ExistsByEmail", mock.Anything, "admin@school.edu").Return(false, nil)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*user.User")).Return(nil)

	u, err := svc.Register(context.Background(), registerParams(user.RoleSchool))

	require.NoError(t, err)
	assert.Equal(t, user.StatusApproved, u.Status)
	assert.Equal(t, "admin@school.edu", u.Email)
	assert.Equal(t, "Green Valley", u.Name)
	assert.NotEqual(t, "secret1", u.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("secret1")))
	repo.AssertExpectations(t)
}

func TestRegister_PublisherIsPending(t *testing.T) {
	for _, role := range []user.Role{user.RolePublisher, user.RoleAdmin} {
		repo := new(mocks.UserRepository)
		svc := user.NewService(repo)
		repo.On("ExistsByEmail", mock.Anything, mock.Anything).Return(false, nil)
		repo.On("Create", mock.Anything, mock.Anything).Return(nil)

		u, err := svc.Register(context.Background(), registerParams(role))

		require.NoError(t, err)
		assert.Equal(t, user.StatusPending, u.Status, "角色 %s", role)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := new(mocks.UserRepository)
	svc := user.NewService(repo)
	repo.On("ExistsByEmail", mock.Anything, "admin@school.edu").Return(true, nil)

	_, err := svc.Register(context.Background(), registerParams(user.RoleSchool))

	assert.True(t, errors.Is(err, user.ErrEmailDuplicate))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegister_RejectsBadInput(t *testing.T) {
	repo := new(mocks.UserRepository)
	svc := user.NewService(repo)

	p := registerParams("STUDENT")
	_, err := svc.Register(context.Background(), p)
	assert.True(t, errors.Is(err, user.ErrInvalidRole))

	p = registerParams(user.RoleSchool)
	p.Password = "12345"
	_, err = svc.Register(context.Background(), p)
	assert.True(t, errors.Is(err, user.ErrWeakPassword))

	repo.AssertExpectations(t)
}

func TestAuthenticate(t *testing.T) {
	approved := &user.User{ID: 1, Email: "a@b.com", Password: hashed(t, "right-pass"), Status: user.StatusApproved}
	pending := &user.User{ID: 2, Email: "p@b.com", Password: hashed(t, "right-pass"), Status: user.StatusPending}

	repo := new(mocks.UserRepository)
	repo.On("FindByEmail", mock.Anything, "a@b.com").Return(approved, nil)
	repo.On("FindByEmail", mock.Anything, "p@b.com").Return(pending, nil)
	repo.On("FindByEmail", mock.Anything, "nobody@b.com").Return(nil, user.ErrUserNotFound)
	svc := user.NewService(repo)
	ctx := context.Background()

	u, err := svc.Authenticate(ctx, "A@B.com", "right-pass")
	require.NoError(t, err)
	assert.Equal(t, uint(1), u.ID)

	_, err = svc.Authenticate(ctx, "a@b.com", "wrong")
	assert.True(t, errors.Is(err, apperrors.ErrInvalidCredentials))

	_, err = svc.Authenticate(ctx, "nobody@b.com", "right-pass")
	assert.True(t, errors.Is(err, apperrors.ErrInvalidCredentials))

	// 未审核账号：密码正确也不能登录
	_, err = svc.Authenticate(ctx, "p@b.com", "right-pass")
	assert.True(t, errors.Is(err, apperrors.ErrAccountNotApproved))

	_, err = svc.Authenticate(ctx, "p@b.com", "wrong")
	assert.True(t, errors.Is(err, apperrors.ErrInvalidCredentials))
}

func TestUpdateStatus_NoTransitionGuard(t *testing.T) {
	repo := new(mocks.UserRepository)
	svc := user.NewService(repo)
	u := &user.User{ID: 3, Status: user.StatusRejected, Version: 4}

	repo.On("FindByID", mock.Anything, uint(3)).Return(u, nil)
	repo.On("Update", mock.Anything, u).Return(nil)

	got, err := svc.UpdateStatus(context.Background(), 3, user.StatusApproved)

	require.NoError(t, err)
	assert.Equal(t, user.StatusApproved, got.Status)
	repo.AssertExpectations(t)
}

func TestUpdateStatus_InvalidStatus(t *testing.T) {
	repo := new(mocks.UserRepository)
	svc := user.NewService(repo)
	repo.On("FindByID", mock.Anything, uint(3)).Return(&user.User{ID: 3}, nil)

	_, err := svc.UpdateStatus(context.Background(), 3, "BANNED")

	assert.True(t, errors.Is(err, user.ErrInvalidStatus))
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateStatus_ConcurrentModification(t *testing.T) {
	repo := new(mocks.UserRepository)
	svc := user.NewService(repo)
	repo.On("FindByID", mock.Anything, uint(3)).Return(&user.User{ID: 3, Status: user.StatusPending}, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(apperrors.ErrConcurrentModification)

	_, err := svc.UpdateStatus(context.Background(), 3, user.StatusApproved)

	assert.True(t, errors.Is(err, apperrors.ErrConcurrentModification))
}

func TestUpdateProfileImage_NotFound(t *testing.T) {
	repo := new(mocks.UserRepository)
	svc := user.NewService(repo)
	repo.On("FindByID", mock.Anything, uint(9)).Return(nil, user.ErrUserNotFound)

	_, err := svc.UpdateProfileImage(context.Background(), 9, "http://img/x.png")

	assert.True(t, errors.Is(err, user.ErrUserNotFound))
}

func TestChangePassword(t *testing.T) {
	u := &user.User{ID: 5, Password: hashed(t, "old-pass")}
	repo := new(mocks.UserRepository)
	repo.On("FindByID", mock.Anything, uint(5)).Return(u, nil)
	repo.On("Update", mock.Anything, u).Return(nil)
	svc := user.NewService(repo)

	err := svc.ChangePassword(context.Background(), 5, "bad-old", "new-pass")
	assert.True(t, errors.Is(err, user.ErrWrongOldPassword))

	err = svc.ChangePassword(context.Background(), 5, "old-pass", "new-pass")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("new-pass")))
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Acme Press", (&user.User{Name: "Jo", OrganizationName: "Acme Press"}).DisplayName())
	assert.Equal(t, "Jo", (&user.User{Name: "Jo"}).DisplayName())
}
