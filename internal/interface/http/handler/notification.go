package handler

import (
	"github.com/gin-gonic/gin"

	appnotification "github.com/xiebiao/educonnect/internal/application/notification"
	"github.com/xiebiao/educonnect/internal/interface/http/dto"
	"github.com/xiebiao/educonnect/pkg/response"
)

// NotificationHandler 站内通知，所有操作限定为当前用户
type NotificationHandler struct {
	inbox *appnotification.InboxUseCase
}

func NewNotificationHandler(inbox *appnotification.InboxUseCase) *NotificationHandler {
	return &NotificationHandler{inbox: inbox}
}

// List 我的通知
// @Summary      通知列表
// @Tags         通知
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "条数，最多50"
// @Success      200 {object} response.Response{data=[]appnotification.NotificationDTO}
// @Router       /notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	var q dto.ListNotificationsQuery
	if !bindQuery(c, &q) {
		return
	}
	result, err := h.inbox.List(c.Request.Context(), currentUserID(c), q.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// UnreadCount 未读数
// @Summary      未读通知数
// @Tags         通知
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Router       /notifications/unread-count [get]
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	count, err := h.inbox.UnreadCount(c.Request.Context(), currentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"count": count})
}

// MarkRead 标记已读
// @Summary      标记通知已读
// @Tags         通知
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "通知ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response
// @Router       /notifications/{id}/read [patch]
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.inbox.MarkRead(c.Request.Context(), id, currentUserID(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, "已标记为已读", nil)
}

// MarkAllRead 全部已读
// @Summary      全部标记已读
// @Tags         通知
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Router       /notifications/read-all [patch]
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	n, err := h.inbox.MarkAllRead(c.Request.Context(), currentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"updated": n})
}

// Delete 删除通知
// @Summary      删除通知
// @Tags         通知
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "通知ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response
// @Router       /notifications/{id} [delete]
func (h *NotificationHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.inbox.Delete(c.Request.Context(), id, currentUserID(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, "删除成功", nil)
}
