package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"git.fiblab.net/sim/transit/config"
	"git.fiblab.net/sim/transit/document"
	easy "git.fiblab.net/utils/logrus-easy-formatter"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

var (
	// 配置信息
	configPath  = flag.String("config", "", "yaml config file path (empty means default config)")
	inputPath   = flag.String("input", STDIO, "request document path, '-' means stdin")
	outputPath  = flag.String("output", STDIO, "response output path, '-' means stdout")
	mongoURI    = flag.String("mongo_uri", "", "mongo db uri")
	basePathStr = flag.String("base", "", "base requests replacing the document's, can be empty [format: {fspath} or {db}.{col}]")
	serve       = flag.Bool("serve", false, "serve stat queries over connect instead of answering the document's stat_requests")
	listen      = flag.String("listen", "", "connect listening address (overrides config)")
	logLevel    = flag.String("log-level", "", "log level [debug, info, warn, error, fatal, panic] (overrides config)")

	// 性能测试
	benchmark = flag.Bool("benchmark", false, "benchmark mode")
	pprofAddr = flag.String("pprof", "", "pprof listening address (overrides config)")

	LOG_LEVELS = map[string]logrus.Level{
		"debug": logrus.DebugLevel,
		"info":  logrus.InfoLevel,
		"warn":  logrus.WarnLevel,
		"error": logrus.ErrorLevel,
		"fatal": logrus.FatalLevel,
		"panic": logrus.PanicLevel,
	}
)

func override(flagValue, configValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return configValue
}

func main() {
	logrus.SetFormatter(&easy.Formatter{
		TimestampFormat: "2006-01-02 15:04:05.0000",
		LogFormat:       "[%module%] [%time%] [%lvl%] %msg%\n",
	})
	// 结果写到stdout，日志写到stderr
	logrus.SetOutput(os.Stderr)
	flag.Parse()
	cfg, err := config.Load(*configPath)
	if err != nil {
		logrus.Fatalf("failed to load config: %s", err)
	}
	if level, ok := LOG_LEVELS[override(*logLevel, cfg.LogLevel)]; ok {
		logrus.SetLevel(level)
	} else {
		logrus.Fatalf("invalid log level: %s", override(*logLevel, cfg.LogLevel))
	}

	input, err := NewPath(*inputPath)
	if err != nil {
		logrus.Fatalf("invalid input path: %s", err)
	}
	basePath, err := NewPath(*basePathStr)
	if err != nil {
		logrus.Fatalf("invalid base path: %s", err)
	}
	ctx := context.Background()
	doc, err := LoadDocument(ctx, *mongoURI, input, basePath)
	if err != nil {
		log.Fatalf("failed to load document: %v", err)
	}
	e := NewEngine(cfg, doc)

	if addr := override(*pprofAddr, cfg.Pprof); addr != "" {
		// 启动pprof
		debugger := newHTTPDebugger(addr, e)
		startHTTPDebugger(debugger)
		defer debugger.Close()
	}

	if !*serve && !*benchmark {
		// 批处理：插入、冻结、应答
		responses, err := document.Process(ctx, e, doc)
		if err != nil {
			log.Fatalf("failed to process document: %v", err)
		}
		if err := writeResponses(*outputPath, responses); err != nil {
			log.Fatalf("failed to write responses: %v", err)
		}
		return
	}

	if err := document.Apply(e, doc.RoutingSettings, doc.BaseRequests); err != nil {
		log.Fatalf("failed to apply base requests: %v", err)
	}
	if err := e.Freeze(ctx); err != nil {
		log.Fatalf("failed to freeze catalogue: %v", err)
	}
	server, err := NewTransitServer(e)
	if err != nil {
		log.Fatalf("failed to create server: %v", err)
	}

	if *benchmark {
		// 性能测试
		runBenchmark(server)
		return
	}
	if len(doc.StatRequests) > 0 {
		log.Warnf("serve mode ignores %d stat requests in document", len(doc.StatRequests))
	}

	addr := override(*listen, cfg.Listen)
	// 使用HTTP/2 w.o. TLS
	s := &http.Server{
		Addr:    addr,
		Handler: h2c.NewHandler(server.Handler(), &http2.Server{}),
	}

	// 优雅退出
	// 创建监听退出chan
	signalCh := make(chan os.Signal, 1)
	//监听指定信号 ctrl+c kill
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signalCh
		log.Info("stopping...")
		go func() {
			<-signalCh
			os.Exit(1) // 强制结束
		}()
		s.Close()
	}()

	log.Infof("server listening at %v", s.Addr)
	if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("failed to serve: %v", err)
	}
	time.Sleep(1 * time.Second) // 延迟等待"优雅退出"
	log.Info("transit closes")
}

func writeResponses(path string, responses []any) error {
	var w io.Writer = os.Stdout
	if path != STDIO && path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	return document.Write(w, responses)
}
