package order

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// GenerateOrderNo 生成订单号
// 格式:EDU + yyyyMMddHHmmss + 6位随机数，如 EDU20240512103000123456
// 唯一性由orders.order_no唯一索引兜底
func GenerateOrderNo() string {
	return fmt.Sprintf("EDU%s%06d", time.Now().Format("20060102150405"), rand.IntN(1000000))
}
