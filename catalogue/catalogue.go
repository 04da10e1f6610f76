// Package catalogue 维护站点与线路目录，冻结后提供线路统计和站点查询
package catalogue

import (
	"fmt"
	"math"
	"sort"

	"git.fiblab.net/sim/transit/geo"
	"github.com/paulmach/orb"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("module", "catalogue")

// Catalogue 站点与线路的唯一所有者
// 构建期只允许单写者访问，冻结后只读，可被并发读取
type Catalogue struct {
	stops map[string]*Stop
	lines map[string]*Line
	// stop name -> line name set
	stopLines map[string]map[string]struct{}

	opts   Options
	frozen bool
}

func New(opts Options) *Catalogue {
	return &Catalogue{
		stops:     make(map[string]*Stop),
		lines:     make(map[string]*Line),
		stopLines: make(map[string]map[string]struct{}),
		opts:      opts,
	}
}

// 取得站点，不存在时创建占位站点
func (c *Catalogue) stopOrPlaceholder(name string) *Stop {
	stop, ok := c.stops[name]
	if !ok {
		stop = &Stop{Name: name, RoadDistances: make(map[string]float64)}
		c.stops[name] = stop
		c.stopLines[name] = make(map[string]struct{})
	}
	return stop
}

// InsertStop 插入站点；若站点已作为占位存在则补全坐标与距离
// 已有坐标的站点默认后写覆盖，RejectDuplicateStops时返回ErrDuplicateDefinition
func (c *Catalogue) InsertStop(name string, p orb.Point, distances map[string]float64) error {
	if c.frozen {
		return ErrAlreadyFrozen
	}
	stop := c.stopOrPlaceholder(name)
	if stop.defined {
		if c.opts.RejectDuplicateStops {
			return fmt.Errorf("%w: stop %q", ErrDuplicateDefinition, name)
		}
		log.Warnf("stop %q redefined, overwrite", name)
	}
	stop.Point = p
	stop.RoadDistances = make(map[string]float64, len(distances))
	for to, d := range distances {
		stop.RoadDistances[to] = d
	}
	stop.defined = true
	return nil
}

// InsertLine 插入线路，非环线展开为往返序列；尚未出现的站点以占位形式创建
func (c *Catalogue) InsertLine(name string, stops []string, isRoundTrip bool) error {
	if c.frozen {
		return ErrAlreadyFrozen
	}
	if len(stops) == 0 {
		return fmt.Errorf("%w: line %q", ErrEmptyLine, name)
	}
	expanded := append([]string(nil), stops...)
	if !isRoundTrip {
		// A,B,C -> A,B,C,B,A
		back := lo.Reverse(append([]string(nil), stops[:len(stops)-1]...))
		expanded = append(expanded, back...)
	}
	old, redefined := c.lines[name]
	if redefined {
		if c.opts.RejectDuplicateStops {
			return fmt.Errorf("%w: line %q", ErrDuplicateDefinition, name)
		}
		log.Warnf("line %q redefined, overwrite", name)
		for _, s := range old.Stops {
			delete(c.stopLines[s], name)
		}
	}
	for _, s := range expanded {
		c.stopOrPlaceholder(s)
		c.stopLines[s][name] = struct{}{}
	}
	if redefined {
		c.dropOrphanPlaceholders(old.Stops)
	}
	c.lines[name] = &Line{Name: name, Stops: expanded, IsRoundTrip: isRoundTrip}
	return nil
}

// 删除不再被任何线路引用的占位站点
func (c *Catalogue) dropOrphanPlaceholders(names []string) {
	for _, s := range names {
		stop, ok := c.stops[s]
		if !ok || stop.defined || len(c.stopLines[s]) > 0 {
			continue
		}
		delete(c.stops, s)
		delete(c.stopLines, s)
	}
}

// RoadDistance 查询from到to的道路距离
// 未声明from->to时回退到to->from（StrictRoadDistances时不回退），两者都缺失返回ErrMissingRoadDistance
func (c *Catalogue) RoadDistance(from, to string) (float64, error) {
	if s, ok := c.stops[from]; ok {
		if d, ok := s.RoadDistances[to]; ok {
			return d, nil
		}
	}
	if !c.opts.StrictRoadDistances {
		if s, ok := c.stops[to]; ok {
			if d, ok := s.RoadDistances[from]; ok {
				return d, nil
			}
		}
	}
	return 0, fmt.Errorf("%w: %q -> %q", ErrMissingRoadDistance, from, to)
}

// Freeze 校验目录并计算所有线路的统计量，成功后目录只读
// 存在占位站点返回ErrIncompleteNetwork，相邻站点缺少道路距离返回ErrMissingRoadDistance；
// 道路距离只声明了一个方向时另一方向取相同值，StrictRoadDistances下视为缺失
// 失败时目录保持可修改状态且不写入任何统计量
func (c *Catalogue) Freeze() error {
	if c.frozen {
		return ErrAlreadyFrozen
	}
	missing := lo.Filter(lo.Keys(c.stops), func(name string, _ int) bool {
		return !c.stops[name].defined
	})
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("%w: stops without coordinates %v", ErrIncompleteNetwork, missing)
	}
	stats := make(map[string]LineStats, len(c.lines))
	for name, line := range c.lines {
		s, err := c.computeStats(line)
		if err != nil {
			return fmt.Errorf("line %q: %w", name, err)
		}
		stats[name] = s
	}
	for name, s := range stats {
		c.lines[name].stats = s
	}
	c.frozen = true
	log.Infof("catalogue frozen with %d stops and %d lines", len(c.stops), len(c.lines))
	return nil
}

func (c *Catalogue) computeStats(line *Line) (LineStats, error) {
	length := 0.0
	for i := 1; i < len(line.Stops); i++ {
		d, err := c.RoadDistance(line.Stops[i-1], line.Stops[i])
		if err != nil {
			return LineStats{}, err
		}
		length += d
	}
	points := lo.Map(line.Stops, func(name string, _ int) orb.Point {
		return c.stops[name].Point
	})
	geoLength := geo.PathDistance(points)
	curvature := math.NaN()
	if geoLength > 0 {
		curvature = length / geoLength
	}
	return LineStats{
		StopCount:       len(line.Stops),
		UniqueStopCount: len(lo.Uniq(line.Stops)),
		Length:          length,
		Curvature:       curvature,
	}, nil
}

func (c *Catalogue) Frozen() bool {
	return c.frozen
}

// getter

func (c *Catalogue) HasStop(name string) bool {
	_, ok := c.stops[name]
	return ok
}

func (c *Catalogue) Stop(name string) (*Stop, bool) {
	s, ok := c.stops[name]
	return s, ok
}

// Stops 按名称排序的全部站点
func (c *Catalogue) Stops() []*Stop {
	names := lo.Keys(c.stops)
	sort.Strings(names)
	return lo.Map(names, func(name string, _ int) *Stop { return c.stops[name] })
}

// Lines 按名称排序的全部线路
func (c *Catalogue) Lines() []*Line {
	names := lo.Keys(c.lines)
	sort.Strings(names)
	return lo.Map(names, func(name string, _ int) *Line { return c.lines[name] })
}

// LineInfo 线路统计量，冻结前或线路不存在时ok为false
func (c *Catalogue) LineInfo(name string) (LineStats, bool) {
	line, ok := c.lines[name]
	if !ok || !c.frozen {
		return LineStats{}, false
	}
	return line.stats, true
}

// StopInfo 途经站点的线路，站点不存在时ok为false
func (c *Catalogue) StopInfo(name string) (StopInfo, bool) {
	lines, ok := c.stopLines[name]
	if !ok {
		return StopInfo{}, false
	}
	names := lo.Keys(lines)
	sort.Strings(names)
	return StopInfo{Lines: names}, true
}
