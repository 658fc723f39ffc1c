package main

import (
	"context"
	"os/signal"
	"sync"
	"syscall"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	"github.com/mkade/usbscout/internal/config"
	"github.com/mkade/usbscout/internal/inventory"
	"github.com/mkade/usbscout/internal/model"
	"github.com/mkade/usbscout/internal/publish"
	"github.com/mkade/usbscout/internal/sysutil"
	"github.com/mkade/usbscout/internal/watcher"
)

var cli struct {
	Config   string `help:"Path to YAML config file." type:"path"`
	Class    string `help:"Device class to enumerate (overrides config)."`
	Queue    int    `help:"Event channel capacity (overrides config)." default:"-1"`
	DB       string `help:"Inventory database path (overrides config)." type:"path"`
	LogLevel string `help:"Log level: debug, info, warn or error (overrides config)."`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("usbscout"),
		kong.Description("Snapshot the attached USB devices and journal them."))

	cfg, err := config.Load(cli.Config)
	ctx.FatalIfErrorf(err)
	if cli.Class != "" {
		cfg.Class = cli.Class
	}
	if cli.Queue >= 0 {
		cfg.QueueSize = cli.Queue
	}
	if cli.DB != "" {
		cfg.Database.Path = cli.DB
	}
	if cli.LogLevel != "" {
		cfg.Logging.Level = cli.LogLevel
	}
	ctx.FatalIfErrorf(cfg.Validate())

	sysutil.InitLogger(cfg.Logging.Level)
	defer sysutil.Log.Sync()

	sysutil.Log.Info("🛡️ usbscout agent starting",
		zap.String("class", cfg.Class),
		zap.Int("queue", cfg.QueueSize))

	store, err := inventory.Open(cfg.Database.Path)
	if err != nil {
		sysutil.Log.Fatal("Inventory init failed", zap.Error(err))
	}
	defer store.Close()

	run(store, cfg)
}

func run(store *inventory.Store, cfg *config.Config) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ch := make(chan model.UsbDeviceInfo, cfg.QueueSize)
	pub := publish.New(ch)

	devWatcher, err := watcher.New(pub, cfg.Class)
	if err != nil {
		sysutil.Log.Fatal("Watcher init failed", zap.Error(err))
	}

	var wg sync.WaitGroup
	var seen int
	wg.Add(1)
	go func() {
		defer wg.Done()
		for dev := range ch {
			seen++
			serial := "-"
			if dev.SerialNumber != nil {
				serial = *dev.SerialNumber
			}
			sysutil.Log.Info("✅ USB device",
				zap.String("name", dev.DeviceName),
				zap.String("vid", dev.VendorID),
				zap.String("pid", dev.ProductID),
				zap.String("serial", serial),
				zap.String("handle", dev.Handle.DeviceID))

			if dev.SerialNumber != nil {
				known, err := store.Known(dev.VendorID, dev.ProductID, *dev.SerialNumber)
				if err == nil && !known {
					sysutil.Log.Info("🔍 New device", zap.String("serial", *dev.SerialNumber))
				}
			}
			if bad, reason := inventory.Suspect(dev); bad {
				sysutil.Log.Warn("🚨 Suspect device", zap.String("reason", reason))
			}
			if err := store.Record(dev); err != nil {
				sysutil.Log.Error("Failed to journal event", zap.Error(err))
			}
		}
	}()

	err = devWatcher.StartMonitoring(ctx)
	close(ch)
	wg.Wait()

	if err != nil {
		sysutil.Log.Fatal("Enumeration pass failed", zap.Error(err))
	}
	sysutil.Log.Info("Enumeration pass complete",
		zap.Int("devices", seen),
		zap.Uint64("dropped", pub.Dropped()))
}
