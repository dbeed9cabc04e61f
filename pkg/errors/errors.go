package errors

import (
	"errors"
	"fmt"
)

// 三类错误：记录不存在、数据源不可用、输入校验失败
// 业务层的哨兵错误通过 %w 包装它们，Handler 层用 errors.Is 统一映射响应码
var (
	ErrNotFound         = errors.New("记录不存在")
	ErrStoreUnavailable = errors.New("数据源不可用")
	ErrValidation       = errors.New("参数校验失败")
)

// Unavailable 将底层查询错误包装为 ErrStoreUnavailable，并保留数据源名称
func Unavailable(store string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrStoreUnavailable, store, err)
}
