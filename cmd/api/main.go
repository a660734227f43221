package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/nigelbigappetite/wingshack-orders-bridge/internal/config"
	"github.com/nigelbigappetite/wingshack-orders-bridge/internal/deliveroo"
	"github.com/nigelbigappetite/wingshack-orders-bridge/internal/httpx"
	kafkax "github.com/nigelbigappetite/wingshack-orders-bridge/internal/kafka"
	"github.com/nigelbigappetite/wingshack-orders-bridge/internal/orders"
	"github.com/nigelbigappetite/wingshack-orders-bridge/internal/postgres"
	"github.com/nigelbigappetite/wingshack-orders-bridge/internal/redisx"
	"github.com/nigelbigappetite/wingshack-orders-bridge/internal/webhook"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer db.Close()

	// Redis (best-effort status cache)
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Kafka producer, only when brokers are configured
	var prod *kafkax.Producer
	if len(cfg.KafkaBrokers) > 0 {
		prod = kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderIngested, 1024)
		prod.Start(ctx)
	}

	api := deliveroo.NewClient(cfg.DeliverooAuthURL, cfg.DeliverooAPIBase,
		cfg.DeliverooClientID, cfg.DeliverooSecret)

	repo := &orders.Repo{DB: db}
	router := httpx.NewRouter()

	wh := &webhook.Handler{
		Store:    repo,
		Ack:      &webhook.Acknowledger{API: api},
		Producer: prod,
		Redis:    rdb,
		Service:  cfg.ServiceName,
	}
	wh.Register(router)

	dh := &httpx.DeliverooHandler{API: api, LocationID: cfg.DeliverooLocationID}
	dh.Register(router)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	go func() {
		log.Printf("HTTP listening at %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	if prod != nil {
		cancel() // stops the producer loop, which drains the inbox and closes the writer
		prod.WaitClosed()
	}
}
