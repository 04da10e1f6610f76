package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"connectrpc.com/connect"
	"git.fiblab.net/sim/transit/document"
	"git.fiblab.net/sim/transit/engine"
	"github.com/google/uuid"
)

const (
	TransitServiceName = "city.transit.v1.TransitService"

	GetBusProcedure   = "/" + TransitServiceName + "/GetBus"
	GetStopProcedure  = "/" + TransitServiceName + "/GetStop"
	GetRouteProcedure = "/" + TransitServiceName + "/GetRoute"
)

// TransitServer 在冻结的引擎上提供查询服务，引擎只读，处理函数可以并发
type TransitServer struct {
	engine *engine.Engine
}

func NewTransitServer(e *engine.Engine) (*TransitServer, error) {
	if e.Phase() != engine.PHASE_FROZEN {
		return nil, fmt.Errorf("%w: server requires a frozen engine", engine.ErrInvalidPhase)
	}
	return &TransitServer{engine: e}, nil
}

// Handler 注册全部接口
func (s *TransitServer) Handler() http.Handler {
	mux := http.NewServeMux()
	opts := []connect.HandlerOption{connect.WithCodec(jsonCodec{})}
	mux.Handle(GetBusProcedure, connect.NewUnaryHandler(GetBusProcedure, s.GetBus, opts...))
	mux.Handle(GetStopProcedure, connect.NewUnaryHandler(GetStopProcedure, s.GetStop, opts...))
	mux.Handle(GetRouteProcedure, connect.NewUnaryHandler(GetRouteProcedure, s.GetRoute, opts...))
	return mux
}

func (s *TransitServer) GetBus(
	ctx context.Context,
	req *connect.Request[document.StatRequest],
) (*connect.Response[json.RawMessage], error) {
	in := *req.Msg
	if in.Name == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("bus name is required"))
	}
	in.Type = document.TYPE_BUS
	return s.answer(in)
}

func (s *TransitServer) GetStop(
	ctx context.Context,
	req *connect.Request[document.StatRequest],
) (*connect.Response[json.RawMessage], error) {
	in := *req.Msg
	if in.Name == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("stop name is required"))
	}
	in.Type = document.TYPE_STOP
	return s.answer(in)
}

func (s *TransitServer) GetRoute(
	ctx context.Context,
	req *connect.Request[document.StatRequest],
) (*connect.Response[json.RawMessage], error) {
	in := *req.Msg
	if in.From == "" || in.To == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("from and to are required"))
	}
	in.Type = document.TYPE_ROUTE
	return s.answer(in)
}

// 应答与批处理输出中的单个元素格式一致，查不到时为error_message
func (s *TransitServer) answer(in document.StatRequest) (*connect.Response[json.RawMessage], error) {
	trace := uuid.NewString()
	log.WithField("trace", trace).Debugf("%s request %d: %+v", in.Type, in.ID, in)
	data, err := json.Marshal(document.Answer(s.engine, in))
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	raw := json.RawMessage(data)
	res := connect.NewResponse(&raw)
	res.Header().Set("X-Trace-Id", trace)
	return res, nil
}
