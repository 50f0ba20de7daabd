package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	_ "github.com/go-sql-driver/mysql"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"

	"github.com/xiebiao/educonnect/internal/domain/user"
	"github.com/xiebiao/educonnect/internal/infrastructure/config"
	"github.com/xiebiao/educonnect/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/educonnect/migrations"
	apperrors "github.com/xiebiao/educonnect/pkg/errors"
	"github.com/xiebiao/educonnect/pkg/logger"
)

const usage = `用法: migrate [-config path] <command> [args]

命令:
  up                 执行全部未应用的迁移
  up-to VERSION      迁移到指定版本
  down               回滚最近一次迁移
  status             查看迁移状态
  version            当前版本
  seed-admin         创建已审核的管理员账号（-email -password -name）
`

// main 数据库迁移工具
// 迁移脚本以embed方式编译进二进制，见migrations/
func main() {
	configPath := flag.String("config", "", "配置文件路径，默认按EDUCONNECT_ENV查找")
	flag.Usage = func() { fmt.Fprint(flag.CommandLine.Output(), usage) }
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		args = []string{"up"}
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}
	zlog, err := logger.New(logger.Config{Level: cfg.Log.Level, Format: "console", Output: "stdout"})
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	command := args[0]
	if command == "seed-admin" {
		if err := seedAdmin(cfg, zlog, args[1:]); err != nil {
			zlog.Fatal("创建管理员失败", zap.Error(err))
		}
		return
	}

	if err := runGoose(cfg, zlog, command, args[1:]); err != nil {
		zlog.Fatal("迁移失败", zap.String("command", command), zap.Error(err))
	}
	zlog.Info("迁移完成", zap.String("command", command))
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}

func runGoose(cfg *config.Config, zlog *zap.Logger, command string, args []string) error {
	db, err := sql.Open("mysql", cfg.Database.DSN()+"&multiStatements=true")
	if err != nil {
		return fmt.Errorf("连接数据库失败: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			zlog.Warn("关闭数据库连接失败", zap.Error(err))
		}
	}()

	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(gooseLogger{zlog.Named("goose").Sugar()})
	if err := goose.SetDialect("mysql"); err != nil {
		return err
	}
	return goose.RunContext(context.Background(), command, db, ".", args...)
}

// gooseLogger 把goose的输出转到zap
type gooseLogger struct {
	s *zap.SugaredLogger
}

func (l gooseLogger) Fatalf(format string, v ...interface{}) { l.s.Fatalf(format, v...) }
func (l gooseLogger) Printf(format string, v ...interface{}) { l.s.Infof(format, v...) }

// seedAdmin 管理员不能通过注册接口创建，部署后用此命令初始化
func seedAdmin(cfg *config.Config, zlog *zap.Logger, args []string) error {
	fs := flag.NewFlagSet("seed-admin", flag.ExitOnError)
	email := fs.String("email", os.Getenv("EDUCONNECT_ADMIN_EMAIL"), "管理员邮箱")
	password := fs.String("password", os.Getenv("EDUCONNECT_ADMIN_PASSWORD"), "管理员密码")
	name := fs.String("name", "Administrator", "显示名称")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" || *password == "" {
		return errors.New("必须提供-email和-password")
	}

	db, closeDB, err := mysql.NewDB(cfg, zlog)
	if err != nil {
		return err
	}
	defer closeDB()

	ctx := context.Background()
	svc := user.NewService(mysql.NewUserRepository(db))
	admin, err := svc.Register(ctx, user.RegisterParams{
		Name:     *name,
		Email:    *email,
		Password: *password,
		Role:     user.RoleAdmin,
	})
	if errors.Is(err, user.ErrEmailDuplicate) {
		zlog.Info("管理员已存在，跳过", zap.String("email", *email))
		return nil
	}
	if err != nil {
		return err
	}

	if _, err := svc.UpdateStatus(ctx, admin.ID, user.StatusApproved); err != nil {
		return apperrors.Wrapf(err, "审核管理员账号失败: %s", admin.Email)
	}
	zlog.Info("管理员已创建", zap.Uint("id", admin.ID), zap.String("email", admin.Email))
	return nil
}
