package shared

import "context"

// UnitOfWork 管理事务边界。
//
// fn 内的所有仓储调用共享同一事务；fn 返回错误时整体回滚。嵌套调用复用外层事务。
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(ctx context.Context) error) error
}
