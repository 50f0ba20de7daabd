package user

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xiebiao/educonnect/internal/application/upload"
	"github.com/xiebiao/educonnect/internal/domain/event"
	"github.com/xiebiao/educonnect/internal/domain/user"
	"github.com/xiebiao/educonnect/internal/mocks"
	apperrors "github.com/xiebiao/educonnect/pkg/errors"
)

func publisher(status user.Status) *user.User {
	return &user.User{ID: 10, Name: "Jane", Email: "jane@acme.com", Password: "hash", Role: user.RolePublisher, Status: status}
}

func TestToUserDTO_OmitsSecrets(t *testing.T) {
	dto := ToUserDTO(publisher(user.StatusPending))
	assert.Equal(t, "PUBLISHER", dto.Role)
	assert.Equal(t, "PENDING", dto.Status)
	assert.NotNil(t, ToUserDTOs(nil))
}

func TestUpdateStatus_PublishesEventOnDecision(t *testing.T) {
	users := new(mocks.UserService)
	events := new(mocks.EventPublisher)
	uc := NewUpdateStatusUseCase(users, events, zap.NewNop())

	users.On("GetByID", mock.Anything, uint(10)).Return(publisher(user.StatusPending), nil)
	users.On("UpdateStatus", mock.Anything, uint(10), user.StatusApproved).Return(publisher(user.StatusApproved), nil)
	events.On("Publish", mock.Anything, event.UserStatusChanged, event.UserStatusChangedPayload{
		UserID: 10, OldStatus: "PENDING", NewStatus: "APPROVED",
	}).Return(nil)

	dto, err := uc.Execute(context.Background(), UpdateStatusRequest{UserID: 10, Status: "APPROVED"})
	require.NoError(t, err)
	assert.Equal(t, "APPROVED", dto.Status)
	events.AssertExpectations(t)
}

func TestUpdateStatus_AnyTransitionAllowed(t *testing.T) {
	users := new(mocks.UserService)
	events := new(mocks.EventPublisher)
	uc := NewUpdateStatusUseCase(users, events, zap.NewNop())

	// 已通过审核的账号可以退回待审核，不发通知
	users.On("GetByID", mock.Anything, uint(10)).Return(publisher(user.StatusApproved), nil)
	users.On("UpdateStatus", mock.Anything, uint(10), user.StatusPending).Return(publisher(user.StatusPending), nil)

	_, err := uc.Execute(context.Background(), UpdateStatusRequest{UserID: 10, Status: "PENDING"})
	require.NoError(t, err)
	events.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateStatus_EventFailureIgnored(t *testing.T) {
	users := new(mocks.UserService)
	events := new(mocks.EventPublisher)
	uc := NewUpdateStatusUseCase(users, events, zap.NewNop())

	users.On("GetByID", mock.Anything, uint(10)).Return(publisher(user.StatusPending), nil)
	users.On("UpdateStatus", mock.Anything, uint(10), user.StatusRejected).Return(publisher(user.StatusRejected), nil)
	events.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(apperrors.ErrMQError)

	_, err := uc.Execute(context.Background(), UpdateStatusRequest{UserID: 10, Status: "REJECTED"})
	assert.NoError(t, err)
}

func TestUpdateStatus_NotFound(t *testing.T) {
	users := new(mocks.UserService)
	uc := NewUpdateStatusUseCase(users, new(mocks.EventPublisher), zap.NewNop())
	users.On("GetByID", mock.Anything, uint(99)).Return(nil, user.ErrUserNotFound)

	_, err := uc.Execute(context.Background(), UpdateStatusRequest{UserID: 99, Status: "APPROVED"})
	assert.True(t, errors.Is(err, user.ErrUserNotFound))
}

func pngFile() upload.File {
	const body = "\x89PNG\r\n\x1a\n"
	return upload.File{Filename: "me.png", ContentType: "image/png", Size: int64(len(body)), Reader: strings.NewReader(body)}
}

func TestUploadProfileImage_Success(t *testing.T) {
	users := new(mocks.UserService)
	store := new(mocks.ObjectStore)
	uc := NewUploadProfileImageUseCase(users, store, 1024, zap.NewNop())

	updated := publisher(user.StatusApproved)
	updated.ProfileImage = "http://cdn/avatars/10/x.png"
	users.On("GetByID", mock.Anything, uint(10)).Return(publisher(user.StatusApproved), nil)
	store.On("Put", mock.Anything, mock.MatchedBy(func(k string) bool { return strings.HasPrefix(k, "avatars/10/") }),
		mock.Anything, int64(8), "image/png").Return("http://cdn/avatars/10/x.png", nil)
	users.On("UpdateProfileImage", mock.Anything, uint(10), "http://cdn/avatars/10/x.png").Return(updated, nil)

	dto, err := uc.Execute(context.Background(), UploadProfileImageRequest{UserID: 10, File: pngFile()})
	require.NoError(t, err)
	assert.Equal(t, "http://cdn/avatars/10/x.png", dto.ProfileImage)
	store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestUploadProfileImage_CompensatesOnUpdateFailure(t *testing.T) {
	users := new(mocks.UserService)
	store := new(mocks.ObjectStore)
	uc := NewUploadProfileImageUseCase(users, store, 1024, zap.NewNop())

	var key string
	users.On("GetByID", mock.Anything, uint(10)).Return(publisher(user.StatusApproved), nil)
	store.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { key = args.String(1) }).
		Return("http://cdn/x.png", nil)
	users.On("UpdateProfileImage", mock.Anything, uint(10), "http://cdn/x.png").Return(nil, apperrors.ErrConcurrentModification)
	store.On("Delete", mock.Anything, mock.Anything).Return(nil)

	_, err := uc.Execute(context.Background(), UploadProfileImageRequest{UserID: 10, File: pngFile()})
	assert.True(t, errors.Is(err, apperrors.ErrConcurrentModification))
	store.AssertCalled(t, "Delete", mock.Anything, key)
}

func TestUploadProfileImage_RejectsInvalidFile(t *testing.T) {
	users := new(mocks.UserService)
	store := new(mocks.ObjectStore)
	uc := NewUploadProfileImageUseCase(users, store, 2, zap.NewNop())

	_, err := uc.Execute(context.Background(), UploadProfileImageRequest{UserID: 10, File: pngFile()})
	assert.True(t, errors.Is(err, upload.ErrFileTooLarge))
	store.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestListPublishers(t *testing.T) {
	users := new(mocks.UserService)
	users.On("ListApprovedPublishers", mock.Anything).Return([]*user.User{publisher(user.StatusApproved)}, nil)

	list, err := NewListPublishersUseCase(users).Execute(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "APPROVED", list[0].Status)
}
