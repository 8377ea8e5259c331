package mysql

import (
	"context"
	"errors"

	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// MySQL错误码1062: Duplicate entry 'xxx' for key 'yyy'
const mysqlErrDuplicateEntry = 1062

// txKey 事务DB在context中的key(私有类型,避免与其他包冲突)
type txKey struct{}

// getDB 从context获取事务DB,如果没有则使用默认DB
// 教学要点:事务传递机制,仓储无需感知自己是否处于事务中
func getDB(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return fallback.WithContext(ctx)
}

// withTx 多条写语句需要原子执行时使用
// 已处于事务中则直接复用,否则开启新事务
func withTx(ctx context.Context, fallback *gorm.DB, fn func(tx *gorm.DB) error) error {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(tx.WithContext(ctx))
	}
	return fallback.WithContext(ctx).Transaction(fn)
}

// isDuplicateError 判断是否为唯一索引冲突
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *mysqldriver.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlErrDuplicateEntry
}

// active 只查询未软删除的行
// 显式作用于每个读操作,不依赖ORM的隐式过滤
func active(table string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(table+".is_deleted = ?", false)
	}
}

// paginate 分页(page从1开始)
func paginate(page, pageSize int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page < 1 {
			page = 1
		}
		if pageSize < 1 {
			pageSize = 20
		}
		return db.Offset((page - 1) * pageSize).Limit(pageSize)
	}
}
