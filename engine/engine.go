// Package engine 编排目录、换乘图与查询：Building阶段接受插入与配置，Freeze后只接受查询
package engine

import (
	"context"
	"fmt"

	"git.fiblab.net/sim/transit/catalogue"
	"git.fiblab.net/sim/transit/router"
	"github.com/go-playground/validator/v10"
	"github.com/paulmach/orb"
	"github.com/puzpuzpuz/xsync/v3"
	"github.com/sirupsen/logrus"
)

var (
	log      = logrus.WithField("module", "engine")
	validate = validator.New()
)

// Engine 查询引擎
// Building阶段的调用需由单个写者完成；Frozen阶段的查询可以并发
type Engine struct {
	opts      Options
	phase     Phase
	catalogue *catalogue.Catalogue
	settings  *router.Settings
	router    *router.Router

	mu *xsync.RBMutex
}

func New(opts Options) *Engine {
	return &Engine{
		opts:  opts,
		phase: PHASE_BUILDING,
		catalogue: catalogue.New(catalogue.Options{
			RejectDuplicateStops: opts.RejectDuplicateStops,
			StrictRoadDistances:  opts.StrictRoadDistances,
		}),
		mu: xsync.NewRBMutex(),
	}
}

func (e *Engine) Phase() Phase {
	token := e.mu.RLock()
	defer e.mu.RUnlock(token)
	return e.phase
}

func (e *Engine) checkPhase(want Phase, op string) error {
	if e.phase != want {
		return fmt.Errorf("%w: %s in %v phase", ErrInvalidPhase, op, e.phase)
	}
	return nil
}

// 目录已冻结而换乘图未建成时只允许重试Freeze
func (e *Engine) checkMutable(op string) error {
	if err := e.checkPhase(PHASE_BUILDING, op); err != nil {
		return err
	}
	if e.catalogue.Frozen() {
		return fmt.Errorf("%w: %s after catalogue frozen, only freeze can be retried", ErrInvalidPhase, op)
	}
	return nil
}

func (e *Engine) InsertStop(rec StopRecord) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.checkMutable("insert stop"); err != nil {
		return err
	}
	if err := validate.Struct(rec); err != nil {
		return fmt.Errorf("%w: stop %q: %v", ErrInvalidRecord, rec.Name, err)
	}
	return e.catalogue.InsertStop(rec.Name, orb.Point{rec.Longitude, rec.Latitude}, rec.RoadDistances)
}

func (e *Engine) InsertLine(rec LineRecord) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.checkMutable("insert line"); err != nil {
		return err
	}
	if err := validate.Struct(rec); err != nil {
		return fmt.Errorf("%w: line %q: %v", ErrInvalidRecord, rec.Name, err)
	}
	return e.catalogue.InsertLine(rec.Name, rec.Stops, rec.IsRoundTrip)
}

// Configure 设置等车时间与速度，重复调用以最后一次为准
func (e *Engine) Configure(rec SettingsRecord) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.checkPhase(PHASE_BUILDING, "configure"); err != nil {
		return err
	}
	if err := validate.Struct(rec); err != nil {
		return fmt.Errorf("%w: routing settings: %v", ErrInvalidRecord, err)
	}
	settings := router.Settings{WaitTime: float64(rec.WaitTime), Velocity: rec.Velocity}
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	e.settings = &settings
	return nil
}

// Freeze 冻结目录并构建换乘图与最短路索引，只能成功一次
// 未调用Configure时只冻结目录，之后的BuildRoute返回ErrRoutingNotConfigured
// 失败时引擎保持Building阶段；若目录已冻结，之后只能重试Freeze
func (e *Engine) Freeze(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.checkPhase(PHASE_BUILDING, "freeze"); err != nil {
		return err
	}
	// 目录冻结成功而索引预计算失败时，重试只需重建换乘图
	if !e.catalogue.Frozen() {
		if err := e.catalogue.Freeze(); err != nil {
			return err
		}
	}
	if e.settings != nil {
		r, err := router.New(e.catalogue, *e.settings)
		if err != nil {
			return err
		}
		if e.opts.Precompute {
			if err := r.Precompute(ctx, e.opts.PrecomputeWorkers); err != nil {
				return err
			}
		}
		e.router = r
	} else {
		log.Warn("routing settings not configured, route queries disabled")
	}
	e.phase = PHASE_FROZEN
	return nil
}

// LineInfo 线路统计量，线路不存在时ok为false
func (e *Engine) LineInfo(name string) (stats catalogue.LineStats, ok bool, err error) {
	token := e.mu.RLock()
	defer e.mu.RUnlock(token)
	if err := e.checkPhase(PHASE_FROZEN, "line info"); err != nil {
		return catalogue.LineStats{}, false, err
	}
	stats, ok = e.catalogue.LineInfo(name)
	return stats, ok, nil
}

// StopInfo 途经站点的线路，站点不存在时ok为false，站点存在但无线路时Lines为空
func (e *Engine) StopInfo(name string) (info catalogue.StopInfo, ok bool, err error) {
	token := e.mu.RLock()
	defer e.mu.RUnlock(token)
	if err := e.checkPhase(PHASE_FROZEN, "stop info"); err != nil {
		return catalogue.StopInfo{}, false, err
	}
	info, ok = e.catalogue.StopInfo(name)
	return info, ok, nil
}

// BuildRoute 两站之间用时最短的路线，不可达时ok为false，站点未知返回router.ErrUnknownStop
func (e *Engine) BuildRoute(from, to string) (route *router.Route, ok bool, err error) {
	token := e.mu.RLock()
	defer e.mu.RUnlock(token)
	if err := e.checkPhase(PHASE_FROZEN, "build route"); err != nil {
		return nil, false, err
	}
	if e.router == nil {
		return nil, false, ErrRoutingNotConfigured
	}
	return e.router.BuildRoute(from, to)
}

// StopNames 冻结后图中的全部站点名
func (e *Engine) StopNames() []string {
	token := e.mu.RLock()
	defer e.mu.RUnlock(token)
	if e.router == nil {
		return nil
	}
	return e.router.StopNames()
}

// Stats 当前规模，未配置路径规划时图与缓存计数为0
func (e *Engine) Stats() Stats {
	token := e.mu.RLock()
	defer e.mu.RUnlock(token)
	s := Stats{
		Phase: e.phase.String(),
		Stops: len(e.catalogue.Stops()),
		Lines: len(e.catalogue.Lines()),
	}
	if e.router != nil {
		s.GraphNodes = e.router.Graph().NodeCount()
		s.GraphEdges = e.router.Graph().EdgeCount()
		s.CachedTrees = e.router.Index().Size()
	}
	return s
}
