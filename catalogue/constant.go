package catalogue

import "errors"

var (
	// 错误：重复定义站点（仅在RejectDuplicateStops策略下）
	ErrDuplicateDefinition = errors.New("duplicate definition")
	// 错误：线路相邻站点之间缺少道路距离
	ErrMissingRoadDistance = errors.New("missing road distance")
	// 错误：线路引用的站点没有坐标
	ErrIncompleteNetwork = errors.New("incomplete network")
	// 错误：冻结后不可修改或再次冻结
	ErrAlreadyFrozen = errors.New("catalogue already frozen")
	// 错误：线路没有站点
	ErrEmptyLine = errors.New("line has no stops")
)
