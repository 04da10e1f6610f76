package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"git.fiblab.net/general/common/v2/mongoutil"
	"git.fiblab.net/sim/transit/config"
	"git.fiblab.net/sim/transit/document"
	"git.fiblab.net/sim/transit/engine"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func openInput(p *Path) (io.ReadCloser, error) {
	if p.File == STDIO {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(p.File)
}

// LoadDocument 读取请求文档
// basePath非空时用它的内容替换文档中的base_requests：文件为BaseRequest的JSON数组，{db}.{col}为MongoDB集合
func LoadDocument(ctx context.Context, mongoURI string, inputPath, basePath *Path) (*document.Document, error) {
	doc := &document.Document{}
	if inputPath != nil {
		if !inputPath.IsFile() {
			return nil, fmt.Errorf("input %s should be a file", inputPath)
		}
		f, err := openInput(inputPath)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		if doc, err = document.Read(f); err != nil {
			return nil, err
		}
	}
	if basePath == nil {
		return doc, nil
	}
	var err error
	if basePath.IsFile() {
		doc.BaseRequests, err = loadBaseFromFile(basePath)
	} else {
		doc.BaseRequests, err = loadBaseFromMongo(ctx, mongoURI, basePath)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load base requests from %s: %w", basePath, err)
	}
	log.Infof("loaded %d base requests from %s", len(doc.BaseRequests), basePath)
	return doc, nil
}

func loadBaseFromFile(p *Path) ([]document.BaseRequest, error) {
	f, err := openInput(p)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var base []document.BaseRequest
	if err := json.NewDecoder(f).Decode(&base); err != nil {
		return nil, err
	}
	return base, nil
}

func loadBaseFromMongo(ctx context.Context, mongoURI string, p *Path) ([]document.BaseRequest, error) {
	if mongoURI == "" {
		return nil, fmt.Errorf("mongo uri is required for %s", p)
	}
	client := mongoutil.NewClient(mongoURI)
	defer client.Disconnect(context.Background())
	return downloadBase(ctx, mongoutil.GetMongoColl(client, p))
}

func downloadBase(ctx context.Context, coll *mongo.Collection) ([]document.BaseRequest, error) {
	cursor, err := coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	base := make([]document.BaseRequest, 0)
	if err := cursor.All(ctx, &base); err != nil {
		return nil, err
	}
	return base, nil
}

// NewEngine 按配置创建引擎，配置中的路径规划参数覆盖文档
func NewEngine(cfg *config.Config, doc *document.Document) *engine.Engine {
	if wait := cfg.Routing.BusWaitTime; wait != nil {
		doc.RoutingSettings = ensureSettings(doc.RoutingSettings)
		doc.RoutingSettings.BusWaitTime = *wait
	}
	if velocity := cfg.Routing.BusVelocity; velocity != nil {
		doc.RoutingSettings = ensureSettings(doc.RoutingSettings)
		doc.RoutingSettings.BusVelocity = *velocity
	}
	return engine.New(engine.Options{
		RejectDuplicateStops: cfg.Catalogue.RejectDuplicateStops,
		StrictRoadDistances:  cfg.Catalogue.StrictRoadDistances,
		Precompute:           cfg.Routing.Precompute,
		PrecomputeWorkers:    cfg.Routing.PrecomputeWorkers,
	})
}

func ensureSettings(s *document.RoutingSettings) *document.RoutingSettings {
	if s == nil {
		return &document.RoutingSettings{}
	}
	return s
}
