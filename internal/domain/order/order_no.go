package order

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// GenerateOrderNo 生成订单号
// 格式:BK + 下单时间(yyyyMMddHHmmss) + 6位随机数
// 示例:BK20240101120000123456
// 唯一性最终由orders.order_no唯一索引保证
func GenerateOrderNo(now time.Time) string {
	return fmt.Sprintf("BK%s%06d", now.Format("20060102150405"), rand.IntN(1000000))
}
