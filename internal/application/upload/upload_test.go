package upload

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 各格式的最小文件头
var (
	pngHeader  = "\x89PNG\r\n\x1a\n" + strings.Repeat("\x00", 16)
	jpegHeader = "\xff\xd8\xff\xe0" + strings.Repeat("\x00", 16)
	gifHeader  = "GIF89a" + strings.Repeat("\x00", 16)
	webpHeader = "RIFF\x00\x00\x00\x00WEBPVP8 " + strings.Repeat("\x00", 16)
	pdfHeader  = "%PDF-1.4\n" + strings.Repeat("x", 16)
)

func file(contentType, body string) File {
	return File{Filename: "a.png", ContentType: contentType, Size: int64(len(body)), Reader: strings.NewReader(body)}
}

func TestFile_Validate(t *testing.T) {
	tests := []struct {
		name    string
		file    File
		maxSize int64
		want    error
		sniffed string
	}{
		{"PNG", file("image/png", pngHeader), 1024, nil, "image/png"},
		{"JPEG", file("image/jpeg", jpegHeader), 0, nil, "image/jpeg"},
		{"GIF", file("image/gif", gifHeader), 0, nil, "image/gif"},
		{"WEBP", file("image/webp", webpHeader), 0, nil, "image/webp"},
		{"声明类型错误以内容为准", file("application/octet-stream", pngHeader), 0, nil, "image/png"},
		{"空文件", File{ContentType: "image/png"}, 1024, ErrEmptyFile, ""},
		{"超过大小", file("image/png", pngHeader), 5, ErrFileTooLarge, ""},
		{"PDF冒充PNG", file("image/png", pdfHeader), 0, ErrUnsupportedType, ""},
		{"HTML冒充JPEG", file("image/jpeg", "<html><script>alert(1)</script></html>"), 0, ErrUnsupportedType, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := tt.file
			err := f.Validate(tt.maxSize)
			if tt.want != nil {
				assert.True(t, errors.Is(err, tt.want), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.sniffed, f.ContentType)
		})
	}
}

func TestFile_ValidateKeepsContent(t *testing.T) {
	body := pngHeader + strings.Repeat("p", 2048)
	f := file("image/png", body)
	require.NoError(t, f.Validate(0))

	got, err := io.ReadAll(f.Reader)
	require.NoError(t, err)
	assert.Equal(t, body, string(got))
}

func TestFile_ObjectKey(t *testing.T) {
	key := File{Filename: "me.JPG", ContentType: "image/jpeg"}.ObjectKey("avatars", 42)
	assert.True(t, strings.HasPrefix(key, "avatars/42/"), key)
	assert.True(t, strings.HasSuffix(key, ".jpg"), key)

	other := File{Filename: "me.JPG", ContentType: "image/jpeg"}.ObjectKey("avatars", 42)
	assert.NotEqual(t, key, other)
}
