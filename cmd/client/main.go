package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bossarena/audio"
	"bossarena/client"
	"bossarena/game"
	"bossarena/logging"
	"bossarena/tui"
)

// BossArena 客户端：终端渲染 + 本地模拟，经中继与其他客户端同步
func main() {
	cfg := client.DefaultConfig()
	var (
		logFile string
		debug   bool
		mute    bool
		offline bool
		seed    int64
	)
	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "relay address: host:port for TCP, ws://host:port/ws for WebSocket")
	flag.StringVar(&logFile, "log", "client.log", "log file (rotated)")
	flag.BoolVar(&debug, "debug", false, "enable debug logging")
	flag.BoolVar(&mute, "mute", false, "disable sound")
	flag.BoolVar(&offline, "offline", false, "play alone without a relay")
	flag.Int64Var(&seed, "seed", 0, "random seed (0 = time based)")
	flag.IntVar(&cfg.FrameRate, "fps", cfg.FrameRate, "frames per second")
	flag.Parse()

	if err := run(cfg, logFile, debug, mute, offline, seed); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfg client.Config, logFile string, debug, mute, offline bool, seed int64) error {
	opts := logging.DefaultOptions(logFile)
	opts.Debug = debug
	log, err := logging.Init(opts)
	if err != nil {
		return err
	}
	defer logging.Sync(log)

	now := time.Now()
	// 会话内玩家 id 取启动时刻的秒级时间戳，同一秒启动的两个客户端会冲突
	localID := uint32(now.Unix())
	if seed == 0 {
		seed = now.UnixNano()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cues game.CueSink = game.NopCues()
	if !mute {
		sp := audio.NewSpeaker(log)
		if err := sp.Init(); err != nil {
			log.Warnw("audio unavailable, continuing muted", "err", err)
		} else {
			defer sp.Close()
			cues = sp
		}
	}

	wopts := game.Options{Cues: cues, Rand: rand.New(rand.NewSource(seed)), Log: log}
	loop := &client.Loop{FrameRate: cfg.FrameRate, Log: log}

	if !offline {
		nc, err := client.Dial(ctx, cfg, log)
		if err != nil {
			return fmt.Errorf("connect %s: %w", cfg.Addr, err)
		}
		defer nc.Close()
		wopts.Out = nc
		wopts.Networked = true
		loop.Incoming = nc.Incoming()
		loop.Disconnected = nc.Done()
	}

	world := game.NewWorld(localID, wopts)
	loop.World = world

	scr, err := tui.New()
	if err != nil {
		return err
	}
	defer scr.Close()
	loop.Input = scr
	loop.View = scr

	log.Infow("client started", "id", localID, "addr", cfg.Addr, "offline", offline, "seed", seed)
	world.Join()

	err = loop.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
