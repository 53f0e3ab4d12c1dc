package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bossarena/logging"
	"bossarena/server"
)

// BossArena 中继入口：TCP 帧流 + HTTP（/ws、/metrics、/admin/players、/healthz）
func main() {
	cfg := server.DefaultConfig()
	cfg.ApplyEnv(os.Getenv)

	var logFile string
	var debug bool
	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "relay TCP listen address, e.g. :9000 (env ARENA_ADDR)")
	flag.StringVar(&cfg.HTTPAddr, "http", cfg.HTTPAddr, "HTTP listen address for /ws and admin (env ARENA_HTTP)")
	flag.StringVar(&logFile, "log", "relay.log", "log file (rotated)")
	flag.BoolVar(&debug, "debug", false, "enable debug logging")
	flag.Parse()

	// 使用第三方 zap 日志库写入日志文件（带滚动）
	opts := logging.DefaultOptions(logFile)
	opts.Debug = debug
	log, err := logging.Init(opts)
	if err != nil {
		panic(err)
	}
	defer logging.Sync(log)

	relay := server.NewRelay(cfg, log)

	ln, err := server.Listen(cfg.Addr, relay)
	if err != nil {
		log.Fatalf("listen %s: %v", cfg.Addr, err)
	}
	go func() {
		if err := ln.Serve(); err != nil {
			log.Fatalf("accept: %v", err)
		}
	}()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", server.HandleWS(relay))
	// 管理与监控接口
	mux.HandleFunc("/metrics", server.HandleMetrics(relay))
	mux.HandleFunc("/admin/players", server.HandlePlayers(relay))
	mux.HandleFunc("/healthz", server.HandleHealth)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: mux}
	go func() {
		log.Infof("BossArena relay on tcp %s, http %s", cfg.Addr, cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http listen: %v", err)
		}
	}()

	// 优雅退出（Ctrl+C）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	_ = ln.Close()
}
