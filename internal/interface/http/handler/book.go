package handler

import (
	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/educonnect/internal/application/book"
	"github.com/xiebiao/educonnect/internal/interface/http/dto"
	"github.com/xiebiao/educonnect/internal/interface/http/middleware"
	"github.com/xiebiao/educonnect/pkg/response"
)

// BookHandler 图书HTTP处理器
type BookHandler struct {
	createBookUseCase  *appbook.CreateBookUseCase
	listBooksUseCase   *appbook.ListBooksUseCase
	getBookUseCase     *appbook.GetBookUseCase
	searchBooksUseCase *appbook.SearchBooksUseCase
	updateBookUseCase  *appbook.UpdateBookUseCase
	deleteBookUseCase  *appbook.DeleteBookUseCase
	uploadCoverUseCase *appbook.UploadCoverUseCase
}

func NewBookHandler(
	createBookUseCase *appbook.CreateBookUseCase,
	listBooksUseCase *appbook.ListBooksUseCase,
	getBookUseCase *appbook.GetBookUseCase,
	searchBooksUseCase *appbook.SearchBooksUseCase,
	updateBookUseCase *appbook.UpdateBookUseCase,
	deleteBookUseCase *appbook.DeleteBookUseCase,
	uploadCoverUseCase *appbook.UploadCoverUseCase,
) *BookHandler {
	return &BookHandler{
		createBookUseCase:  createBookUseCase,
		listBooksUseCase:   listBooksUseCase,
		getBookUseCase:     getBookUseCase,
		searchBooksUseCase: searchBooksUseCase,
		updateBookUseCase:  updateBookUseCase,
		deleteBookUseCase:  deleteBookUseCase,
		uploadCoverUseCase: uploadCoverUseCase,
	}
}

// bookBody 创建和修改请求共有的价格校验
type bookBody interface {
	PositivePrice() bool
}

// bindBook 绑定失败或价格不合法时已写好响应
func bindBook(c *gin.Context, req bookBody) bool {
	if !bindJSON(c, req) {
		return false
	}
	if !req.PositivePrice() {
		response.ValidationError(c, map[string]string{"price": "必须大于0"})
		return false
	}
	return true
}

func actorOf(c *gin.Context) appbook.Actor {
	return appbook.Actor{UserID: currentUserID(c), Role: middleware.GetRole(c)}
}

// Create 创建图书
// @Summary      创建图书
// @Description  发布者名称取当前账号的机构名，没有时用姓名
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateBookRequest true "图书信息"
// @Success      201 {object} response.Response{data=appbook.BookDTO}
// @Failure      400 {object} response.Response "参数错误或ISBN已存在"
// @Failure      403 {object} response.Response
// @Router       /books [post]
func (h *BookHandler) Create(c *gin.Context) {
	var req dto.CreateBookRequest
	if !bindBook(c, &req) {
		return
	}

	result, err := h.createBookUseCase.Execute(c.Request.Context(), appbook.CreateBookRequest{
		PublisherID: currentUserID(c),
		ISBN:        req.ISBN,
		Title:       req.Title,
		Grade:       req.Grade,
		Subject:     req.Subject,
		Author:      req.Author,
		Price:       req.Price,
		Description: req.Description,
		CoverImage:  req.CoverImage,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "创建成功", result)
}

// List 全部图书
// @Summary      图书列表
// @Tags         图书
// @Produce      json
// @Success      200 {object} response.Response{data=[]appbook.BookDTO}
// @Router       /books [get]
func (h *BookHandler) List(c *gin.Context) {
	result, err := h.listBooksUseCase.Execute(c.Request.Context(), appbook.ListBooksRequest{})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ListByPublisher 某个发布者的图书
// @Summary      发布者的图书
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "发布者ID"
// @Success      200 {object} response.Response{data=[]appbook.BookDTO}
// @Router       /books/publisher/{id} [get]
func (h *BookHandler) ListByPublisher(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	result, err := h.listBooksUseCase.Execute(c.Request.Context(), appbook.ListBooksRequest{PublisherID: id})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Get 图书详情
// @Summary      图书详情
// @Tags         图书
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response{data=appbook.BookDTO}
// @Failure      404 {object} response.Response
// @Router       /books/{id} [get]
func (h *BookHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	result, err := h.getBookUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Search 关键字搜索（书名、作者、学科，不区分大小写）
// @Summary      搜索图书
// @Tags         图书
// @Produce      json
// @Param        keyword query string true "关键字"
// @Success      200 {object} response.Response{data=[]appbook.BookDTO}
// @Failure      400 {object} response.Response
// @Router       /books/search [get]
func (h *BookHandler) Search(c *gin.Context) {
	var q dto.SearchBooksQuery
	if !bindQuery(c, &q) {
		return
	}
	result, err := h.searchBooksUseCase.Execute(c.Request.Context(), q.Keyword)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Update 修改图书
// @Summary      修改图书
// @Description  只有图书所属发布者或管理员可以修改；ISBN不可修改；封面为空时保留原值
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Param        request body dto.BookRequest true "图书信息"
// @Success      200 {object} response.Response{data=appbook.BookDTO}
// @Failure      400 {object} response.Response
// @Router       /books/{id} [put]
func (h *BookHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.BookRequest
	if !bindBook(c, &req) {
		return
	}

	result, err := h.updateBookUseCase.Execute(c.Request.Context(), appbook.UpdateBookRequest{
		BookID:      id,
		Actor:       actorOf(c),
		Title:       req.Title,
		Grade:       req.Grade,
		Subject:     req.Subject,
		Author:      req.Author,
		Price:       req.Price,
		Description: req.Description,
		CoverImage:  req.CoverImage,
	})
	if err != nil {
		response.BadRequest(c, err)
		return
	}
	response.SuccessWithMessage(c, "修改成功", result)
}

// Delete 删除图书
// @Summary      删除图书
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response
// @Router       /books/{id} [delete]
func (h *BookHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.deleteBookUseCase.Execute(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, "删除成功", nil)
}

// UploadCover 上传封面
// @Summary      上传图书封面
// @Tags         图书
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Param        file formData file true "图片(jpg/png/gif/webp)"
// @Success      200 {object} response.Response{data=appbook.BookDTO}
// @Failure      400 {object} response.Response
// @Failure      413 {object} response.Response "文件过大"
// @Router       /books/{id}/cover [post]
func (h *BookHandler) UploadCover(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	file, closeFile, ok := formImage(c)
	if !ok {
		return
	}
	defer closeFile()

	result, err := h.uploadCoverUseCase.Execute(c.Request.Context(), appbook.UploadCoverRequest{
		BookID: id,
		Actor:  actorOf(c),
		File:   file,
	})
	if err != nil {
		response.BadRequest(c, err)
		return
	}
	response.Success(c, result)
}
