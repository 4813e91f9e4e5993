package main

import (
	"context"

	"orders-hertz/biz/dal"
	"orders-hertz/biz/dal/db"
	"orders-hertz/biz/event"
	"orders-hertz/biz/handler"
	"orders-hertz/biz/registry"
	"orders-hertz/biz/router"
	"orders-hertz/biz/service"
	"orders-hertz/conf"
	"orders-hertz/middleware"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	cfg := conf.GetConf()

	h := server.New(server.WithHostPorts(cfg.Hertz.Address))
	initLog(h, cfg.Hertz)

	store, err := dal.Init(cfg.Database)
	if err != nil {
		hlog.Fatalf("init datastore: %v", err)
	}
	h.OnShutdown = append(h.OnShutdown, func(ctx context.Context) {
		if err := store.Close(); err != nil {
			hlog.Errorf("close datastore: %v", err)
		}
	})

	publisher, hub := initPublishers(cfg)
	h.OnShutdown = append(h.OnShutdown, func(ctx context.Context) {
		if err := publisher.Close(); err != nil {
			hlog.Errorf("close publishers: %v", err)
		}
	})

	svc := service.NewOrderService(db.NewOrderRepo(store), publisher)
	var stream *handler.StreamHandler
	if hub != nil {
		stream = handler.NewStreamHandler(hub)
	}

	middleware.Register(h, cfg.Hertz)
	router.Register(h, handler.NewOrderHandler(svc), stream)

	initRegistry(h, cfg)

	hlog.Infof("%s listening on %s (env=%s)", cfg.Hertz.Service, cfg.Hertz.Address, cfg.Env)
	h.Spin()
}

// initPublishers builds the order-created sinks that are enabled in config.
func initPublishers(cfg *conf.Config) (event.Publisher, *event.Hub) {
	var sinks event.Multi
	var hub *event.Hub

	if len(cfg.Kafka.Brokers) > 0 {
		if err := event.CheckKafkaConnection(context.Background(), cfg.Kafka); err != nil {
			hlog.Warnf("kafka unreachable, events will be retried by the writer: %v", err)
		}
		kp, err := event.NewKafkaPublisher(cfg.Kafka)
		if err != nil {
			hlog.Fatalf("init kafka publisher: %v", err)
		}
		sinks = append(sinks, kp)
	}

	if cfg.Stream.Enable {
		var err error
		hub, err = event.NewHub(cfg.Stream.PoolSize)
		if err != nil {
			hlog.Fatalf("init stream hub: %v", err)
		}
		sinks = append(sinks, hub)
	}

	if len(sinks) == 0 {
		return event.Nop{}, nil
	}
	return sinks, hub
}

func initRegistry(h *server.Hertz, cfg *conf.Config) {
	if len(cfg.Registry.RegistryAddress) == 0 {
		return
	}
	r, err := registry.NewConsulRegistry(cfg.Registry.RegistryAddress)
	if err != nil {
		hlog.Warnf("consul unavailable, skip registration: %v", err)
		return
	}
	reg := registry.Registration(cfg.Hertz.Service, cfg.Registry)
	if err := r.Register(reg); err != nil {
		hlog.Warnf("consul register %s: %v", reg.ID, err)
		return
	}
	h.OnShutdown = append(h.OnShutdown, func(ctx context.Context) {
		if err := r.Deregister(reg.ID); err != nil {
			hlog.Errorf("consul deregister %s: %v", reg.ID, err)
		}
	})
}
