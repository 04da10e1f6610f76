// Package document 负责请求文档的读取、执行与应答输出
package document

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"git.fiblab.net/sim/transit/engine"
	"git.fiblab.net/sim/transit/router"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("module", "document")

// 错误：未知的请求类型
var ErrUnknownRequestType = errors.New("unknown request type")

func Read(r io.Reader) (*Document, error) {
	doc := &Document{}
	if err := json.NewDecoder(r).Decode(doc); err != nil {
		return nil, fmt.Errorf("failed to decode request document: %w", err)
	}
	return doc, nil
}

// Write 以JSON数组输出应答
func Write(w io.Writer, responses []any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(responses)
}

// Apply 将路径规划参数与插入请求写入引擎
func Apply(e *engine.Engine, settings *RoutingSettings, base []BaseRequest) error {
	if settings != nil {
		if err := e.Configure(engine.SettingsRecord{
			WaitTime: settings.BusWaitTime,
			Velocity: settings.BusVelocity,
		}); err != nil {
			return err
		}
	}
	for i, req := range base {
		var err error
		switch req.Type {
		case TYPE_STOP:
			err = e.InsertStop(engine.StopRecord{
				Name:          req.Name,
				Latitude:      req.Latitude,
				Longitude:     req.Longitude,
				RoadDistances: req.RoadDistances,
			})
		case TYPE_BUS:
			err = e.InsertLine(engine.LineRecord{
				Name:        req.Name,
				Stops:       req.Stops,
				IsRoundTrip: req.IsRoundTrip,
			})
		default:
			err = fmt.Errorf("%w: %q", ErrUnknownRequestType, req.Type)
		}
		if err != nil {
			return fmt.Errorf("base request #%d: %w", i, err)
		}
	}
	log.Debugf("applied %d base requests", len(base))
	return nil
}

// Process 执行整个文档：插入、冻结、逐条应答
func Process(ctx context.Context, e *engine.Engine, doc *Document) ([]any, error) {
	if err := Apply(e, doc.RoutingSettings, doc.BaseRequests); err != nil {
		return nil, err
	}
	if err := e.Freeze(ctx); err != nil {
		return nil, err
	}
	return AnswerAll(e, doc.StatRequests), nil
}

func AnswerAll(e *engine.Engine, reqs []StatRequest) []any {
	return lo.Map(reqs, func(req StatRequest, _ int) any {
		return Answer(e, req)
	})
}

// Answer 每个请求都有应答：查不到或出错时为ErrorResponse
func Answer(e *engine.Engine, req StatRequest) any {
	resp, err := answer(e, req)
	if err != nil {
		log.Warnf("request %d failed: %v", req.ID, err)
		return &ErrorResponse{RequestID: req.ID, ErrorMessage: err.Error()}
	}
	return resp
}

func answer(e *engine.Engine, req StatRequest) (any, error) {
	notFound := &ErrorResponse{RequestID: req.ID, ErrorMessage: NOT_FOUND}
	switch req.Type {
	case TYPE_BUS:
		stats, ok, err := e.LineInfo(req.Name)
		if err != nil {
			return nil, err
		}
		if !ok {
			return notFound, nil
		}
		return &BusResponse{
			RequestID:       req.ID,
			StopCount:       stats.StopCount,
			UniqueStopCount: stats.UniqueStopCount,
			RouteLength:     stats.Length,
			Curvature:       Float(stats.Curvature),
		}, nil
	case TYPE_STOP:
		info, ok, err := e.StopInfo(req.Name)
		if err != nil {
			return nil, err
		}
		if !ok {
			return notFound, nil
		}
		return &StopResponse{RequestID: req.ID, Buses: info.Lines}, nil
	case TYPE_ROUTE:
		// 未知站点按查不到处理
		for _, name := range []string{req.From, req.To} {
			if _, ok, err := e.StopInfo(name); err != nil {
				return nil, err
			} else if !ok {
				return notFound, nil
			}
		}
		route, ok, err := e.BuildRoute(req.From, req.To)
		if err != nil {
			return nil, err
		}
		if !ok {
			return notFound, nil
		}
		return NewRouteResponse(req.ID, route), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownRequestType, req.Type)
	}
}

func NewRouteResponse(id int64, route *router.Route) *RouteResponse {
	return &RouteResponse{
		RequestID: id,
		TotalTime: route.TotalTime,
		Items: lo.Map(route.Activities, func(a router.Activity, _ int) RouteItem {
			if a.Kind == router.EDGE_WAIT {
				return RouteItem{Type: TYPE_WAIT, StopName: a.Stop, Time: a.Time}
			}
			return RouteItem{Type: TYPE_BUS, Bus: a.Line, SpanCount: a.SpanCount, Time: a.Time}
		}),
	}
}
