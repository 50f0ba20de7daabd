package dto

import "github.com/shopspring/decimal"

// BookRequest 修改图书，也是创建请求的公共部分
// 长度上限与 migrations 中的列宽一致
// Price 接受数字或字符串，由handler校验必须大于0
type BookRequest struct {
	Title       string          `json:"title" binding:"required,max=200" example:"初中数学（八年级上册）"`
	Grade       string          `json:"grade" binding:"required,max=50" example:"8"`
	Subject     string          `json:"subject" binding:"required,max=100" example:"数学"`
	Author      string          `json:"author" binding:"required,max=120" example:"人教版编写组"`
	Price       decimal.Decimal `json:"price" swaggertype:"number" example:"25.80"`
	Description string          `json:"description" binding:"max=5000"`
	CoverImage  string          `json:"coverImage" binding:"omitempty,max=500"`
}

// PositivePrice 价格必须大于0，binding标签无法表达decimal的比较
func (r BookRequest) PositivePrice() bool {
	return r.Price.IsPositive()
}

// CreateBookRequest 创建图书，ISBN创建后不可修改
type CreateBookRequest struct {
	ISBN string `json:"isbn" binding:"required,max=20" example:"9787107000000"`
	BookRequest
}

// SearchBooksQuery 关键字搜索
type SearchBooksQuery struct {
	Keyword string `form:"keyword" binding:"required,max=100"`
}
