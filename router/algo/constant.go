package algo

import "errors"

const (
	// 无前驱边
	NO_EDGE = -1
)

var (
	// 错误：节点不存在
	ErrNodeNotExists = errors.New("node not exists")
	// 错误：图冻结后不可修改
	ErrGraphFrozen = errors.New("graph is frozen, should not add nodes or edges")
)
