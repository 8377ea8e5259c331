package application

import "context"

// TxManager 事务边界
// fn内通过ctx访问仓储的所有写操作属于同一事务:fn返回error回滚,返回nil提交
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}
