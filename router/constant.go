package router

import "errors"

const (
	// 单位换算：距离为m，速度为km/h，时间为min
	METERS_PER_KILOMETER = 1000
	MINUTES_PER_HOUR     = 60
)

var (
	// 错误：站点不在图中
	ErrUnknownStop = errors.New("unknown stop")
	// 错误：等车时间为负或速度非正
	ErrInvalidSettings = errors.New("invalid routing settings")
	// 错误：目录未冻结
	ErrCatalogueNotFrozen = errors.New("catalogue should be frozen before building route graph")
)
