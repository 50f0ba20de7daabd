// Package migrations 数据库迁移脚本（goose格式），编译进cmd/migrate
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
