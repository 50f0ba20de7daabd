// Package upload 头像、封面等图片上传的公共校验
package upload

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/google/uuid"

	apperrors "github.com/xiebiao/educonnect/pkg/errors"
)

var (
	ErrEmptyFile       = apperrors.New(apperrors.ErrCodeInvalidParams, "请选择要上传的文件")
	ErrFileTooLarge    = apperrors.New(apperrors.ErrCodeInvalidParams, "文件过大")
	ErrUnsupportedType = apperrors.New(apperrors.ErrCodeInvalidParams, "仅支持jpg、png、gif、webp格式的图片")
)

var allowedTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// sniffLen http.DetectContentType 最多看前512字节
const sniffLen = 512

// File 待上传的文件
// ContentType 初始为客户端声明的类型，Validate 之后替换为按内容识别的类型
type File struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// Validate 校验大小和类型，maxSize<=0表示不限制大小
// 类型按文件头识别，不信任客户端的Content-Type；读过的字节会拼回Reader
func (f *File) Validate(maxSize int64) error {
	if f.Reader == nil || f.Size <= 0 {
		return ErrEmptyFile
	}
	if maxSize > 0 && f.Size > maxSize {
		return ErrFileTooLarge
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(f.Reader, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return apperrors.ErrBindError.WithErr(err)
	}
	if n == 0 {
		return ErrEmptyFile
	}
	head = head[:n]
	f.Reader = io.MultiReader(bytes.NewReader(head), f.Reader)
	f.ContentType = http.DetectContentType(head)

	if _, ok := allowedTypes[f.mediaType()]; !ok {
		return ErrUnsupportedType
	}
	return nil
}

// ObjectKey 生成对象存储key：{prefix}/{owner}/{uuid}{ext}
func (f File) ObjectKey(prefix string, owner uint) string {
	ext := allowedTypes[f.mediaType()]
	if ext == "" {
		ext = strings.ToLower(path.Ext(f.Filename))
	}
	return path.Join(prefix, strconv.FormatUint(uint64(owner), 10), uuid.NewString()+ext)
}

// 去掉 "; charset=..." 之类的参数
func (f File) mediaType() string {
	mt, _, _ := strings.Cut(f.ContentType, ";")
	return strings.ToLower(strings.TrimSpace(mt))
}
