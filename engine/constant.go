package engine

import "errors"

var (
	// 错误：调用顺序不符合 Building -> Frozen
	ErrInvalidPhase = errors.New("invalid phase")
	// 错误：输入记录校验失败
	ErrInvalidRecord = errors.New("invalid record")
	// 错误：未设置路径规划参数
	ErrRoutingNotConfigured = errors.New("routing settings not configured")
)
