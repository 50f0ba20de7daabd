package mysql

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/xiebiao/educonnect/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 1. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 2. debug模式打印SQL，其他模式只记录慢查询和错误
// 3. database.auto_migrate=true时执行AutoMigrate，生产环境使用cmd/migrate
func NewDB(cfg *config.Config, log *zap.Logger) (*gorm.DB, func(), error) {
	logLevel := gormlogger.Warn
	if cfg.Server.Mode == "debug" {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(mysql.Open(cfg.Database.DSN()), &gorm.Config{
		Logger: gormlogger.New(zap.NewStdLog(log.Named("gorm")), gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logLevel,
			IgnoreRecordNotFoundError: true,
		}),
		TranslateError: true,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}
	log.Info("数据库连接成功",
		zap.String("host", cfg.Database.Host),
		zap.String("db", cfg.Database.DBName))

	if cfg.Database.AutoMigrate {
		if err := AutoMigrate(db); err != nil {
			_ = sqlDB.Close()
			return nil, nil, fmt.Errorf("数据库迁移失败: %w", err)
		}
	}

	cleanup := func() {
		if err := sqlDB.Close(); err != nil {
			log.Warn("关闭数据库连接失败", zap.Error(err))
		}
	}
	return db, cleanup, nil
}

// AutoMigrate 自动迁移表结构（开发环境）
// 只会建表、加字段，不会删除或修改已有字段
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&UserModel{},
		&BookModel{},
		&OrderModel{},
		&OrderItemModel{},
		&NotificationModel{},
	)
}

// UserModel GORM用户模型
// domain/user/entity.go是领域实体，不依赖GORM，Repository负责两者转换
type UserModel struct {
	ID               uint      `gorm:"primaryKey"`
	Name             string    `gorm:"size:120;not null;comment:姓名"`
	Email            string    `gorm:"uniqueIndex;size:191;not null;comment:邮箱"`
	Password         string    `gorm:"size:255;not null;comment:密码（bcrypt加密）"`
	Role             string    `gorm:"index:idx_role_status;size:20;not null;comment:角色"`
	OrganizationName string    `gorm:"size:200;comment:机构名称"`
	Phone            string    `gorm:"size:30;comment:电话"`
	DocumentURL      string    `gorm:"size:500;comment:资质文件"`
	ProfileImage     string    `gorm:"size:500;comment:头像"`
	Status           string    `gorm:"index:idx_role_status;size:20;not null;comment:审核状态"`
	Version          uint      `gorm:"not null;default:0;comment:乐观锁版本号"`
	CreatedAt        time.Time `gorm:"comment:创建时间"`
	UpdatedAt        time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (UserModel) TableName() string {
	return "users"
}

// BookModel GORM图书模型
// 1. 价格decimal(10,2)
// 2. ISBN唯一索引
// 3. 软删除，历史订单仍然可以追溯到图书
type BookModel struct {
	ID            uint            `gorm:"primaryKey"`
	Title         string          `gorm:"size:200;not null;comment:书名"`
	Grade         string          `gorm:"size:50;not null;comment:年级"`
	Subject       string          `gorm:"size:100;not null;comment:学科"`
	Author        string          `gorm:"size:120;not null;comment:作者"`
	ISBN          string          `gorm:"column:isbn;uniqueIndex;size:32;not null;comment:ISBN号"`
	Price         decimal.Decimal `gorm:"type:decimal(10,2);not null;comment:价格"`
	PublisherID   uint            `gorm:"index;not null;comment:发布者用户ID"`
	PublisherName string          `gorm:"size:200;comment:发布者名称快照"`
	Description   string          `gorm:"type:text;comment:图书描述"`
	CoverImage    string          `gorm:"size:500;comment:封面图片URL"`
	Version       uint            `gorm:"not null;default:0;comment:乐观锁版本号"`
	CreatedAt     time.Time       `gorm:"index;comment:创建时间"`
	UpdatedAt     time.Time       `gorm:"comment:更新时间"`
	DeletedAt     gorm.DeletedAt  `gorm:"index;comment:删除时间(软删除)"`
}

// TableName 指定表名
func (BookModel) TableName() string {
	return "books"
}

// OrderModel GORM订单模型，与OrderItemModel一对多
type OrderModel struct {
	ID            uint             `gorm:"primaryKey"`
	OrderNo       string           `gorm:"uniqueIndex;size:32;not null;comment:订单号"`
	SchoolID      uint             `gorm:"index;not null;comment:下单学校ID"`
	SchoolName    string           `gorm:"size:200;comment:学校名称快照"`
	Total         decimal.Decimal  `gorm:"type:decimal(12,2);not null;comment:订单总金额"`
	Status        string           `gorm:"index;size:20;not null;comment:订单状态"`
	PaymentStatus string           `gorm:"size:20;not null;comment:支付状态"`
	Version       uint             `gorm:"not null;default:0;comment:乐观锁版本号"`
	Items         []OrderItemModel `gorm:"foreignKey:OrderID"`
	CreatedAt     time.Time        `gorm:"index;comment:创建时间"`
	UpdatedAt     time.Time        `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel GORM订单明细模型，保存下单时的价格、书名、发布者快照
type OrderItemModel struct {
	ID          uint            `gorm:"primaryKey"`
	OrderID     uint            `gorm:"index;not null;comment:订单ID"`
	BookID      uint            `gorm:"index;not null;comment:图书ID"`
	BookTitle   string          `gorm:"size:200;not null;comment:书名快照"`
	PublisherID uint            `gorm:"index;not null;comment:发布者ID快照"`
	Quantity    int             `gorm:"not null;comment:购买数量"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null;comment:下单时单价"`
}

// TableName 指定表名
func (OrderItemModel) TableName() string {
	return "order_items"
}

// NotificationModel 站内通知
type NotificationModel struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"index:idx_user_read;not null;comment:接收用户ID"`
	Type      string    `gorm:"size:30;not null;comment:通知类型"`
	Title     string    `gorm:"size:200;not null;comment:标题"`
	Message   string    `gorm:"type:text;not null;comment:内容"`
	Link      string    `gorm:"size:255;comment:跳转链接"`
	IsRead    bool      `gorm:"index:idx_user_read;not null;default:false;comment:是否已读"`
	CreatedAt time.Time `gorm:"index;comment:创建时间"`
}

// TableName 指定表名
func (NotificationModel) TableName() string {
	return "notifications"
}
