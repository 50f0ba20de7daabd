package handler

import (
	"github.com/gin-gonic/gin"

	apporder "github.com/xiebiao/educonnect/internal/application/order"
	"github.com/xiebiao/educonnect/internal/interface/http/dto"
	"github.com/xiebiao/educonnect/internal/interface/http/middleware"
	"github.com/xiebiao/educonnect/pkg/response"
)

// OrderHandler 订单HTTP处理器
type OrderHandler struct {
	createOrderUseCase  *apporder.CreateOrderUseCase
	listOrdersUseCase   *apporder.ListOrdersUseCase
	getOrderUseCase     *apporder.GetOrderUseCase
	updateStatusUseCase *apporder.UpdateStatusUseCase
}

func NewOrderHandler(
	createOrderUseCase *apporder.CreateOrderUseCase,
	listOrdersUseCase *apporder.ListOrdersUseCase,
	getOrderUseCase *apporder.GetOrderUseCase,
	updateStatusUseCase *apporder.UpdateStatusUseCase,
) *OrderHandler {
	return &OrderHandler{
		createOrderUseCase:  createOrderUseCase,
		listOrdersUseCase:   listOrdersUseCase,
		getOrderUseCase:     getOrderUseCase,
		updateStatusUseCase: updateStatusUseCase,
	}
}

func viewerOf(c *gin.Context) apporder.Viewer {
	return apporder.Viewer{UserID: currentUserID(c), Role: middleware.GetRole(c)}
}

// Create 学校下单
// @Summary      创建订单
// @Description  单价取图书当前价格，订单与明细在同一事务中写入
// @Tags         订单
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateOrderRequest true "订单明细"
// @Success      201 {object} response.Response{data=apporder.OrderDTO}
// @Failure      400 {object} response.Response "参数错误或图书不存在"
// @Failure      403 {object} response.Response
// @Router       /orders [post]
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	items := make([]apporder.CreateOrderItem, len(req.Items))
	for i, it := range req.Items {
		items[i] = apporder.CreateOrderItem{BookID: it.BookID, Quantity: it.Quantity}
	}

	result, err := h.createOrderUseCase.Execute(c.Request.Context(), apporder.CreateOrderRequest{
		SchoolID: currentUserID(c),
		Items:    items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "下单成功", result)
}

// List 订单列表
// @Summary      订单列表
// @Description  学校看到自己的订单，发布者看到包含自己图书的订单，管理员看到全部
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "页码"
// @Param        page_size query int false "每页条数"
// @Success      200 {object} response.Response{data=response.PageData}
// @Router       /orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	var q dto.ListOrdersQuery
	if !bindQuery(c, &q) {
		return
	}

	page, err := h.listOrdersUseCase.Execute(c.Request.Context(), apporder.ListOrdersRequest{
		Viewer:   viewerOf(c),
		Page:     q.Page,
		PageSize: q.PageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPage(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Get 订单详情
// @Summary      订单详情
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "订单ID"
// @Success      200 {object} response.Response{data=apporder.OrderDTO}
// @Failure      403 {object} response.Response
// @Failure      404 {object} response.Response
// @Router       /orders/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	result, err := h.getOrderUseCase.Execute(c.Request.Context(), id, viewerOf(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// UpdateStatus 修改订单状态/支付状态
// @Summary      修改订单状态
// @Tags         订单
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "订单ID"
// @Param        request body dto.UpdateOrderStatusRequest true "目标状态"
// @Success      200 {object} response.Response{data=apporder.OrderDTO}
// @Failure      400 {object} response.Response "状态流转非法"
// @Failure      403 {object} response.Response
// @Failure      404 {object} response.Response
// @Router       /orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateOrderStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.updateStatusUseCase.Execute(c.Request.Context(), apporder.UpdateStatusRequest{
		OrderID:       id,
		Actor:         viewerOf(c),
		Status:        req.Status,
		PaymentStatus: req.PaymentStatus,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, "订单已更新", result)
}
