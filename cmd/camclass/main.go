// camclass - live webcam classification with a web dashboard
//
// Captures frames from a webcam, runs an on-device classification model
// on the newest frame at a fixed cadence, and serves the top-3 labels
// plus a live preview at http://localhost:8420.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/edgevision/go-camclass/internal/config"
	"github.com/edgevision/go-camclass/internal/log"
	"github.com/edgevision/go-camclass/pkg/camera"
	"github.com/edgevision/go-camclass/pkg/classify"
	"github.com/edgevision/go-camclass/pkg/debug"
	"github.com/edgevision/go-camclass/pkg/frame"
	"github.com/edgevision/go-camclass/pkg/pipeline"
	"github.com/edgevision/go-camclass/pkg/web"
)

func main() {
	var (
		device      = flag.Int("device", config.CameraDevice(), "capture device index")
		port        = flag.String("port", config.HTTPPort(), "dashboard HTTP port")
		modelPath   = flag.String("model", config.ModelPath(), "classification model (ONNX)")
		labelsPath  = flag.String("labels", config.LabelsPath(), "labels file, one label per line")
		preset      = flag.String("preset", camera.PresetDefault, "camera preset")
		interval    = flag.Duration("interval", config.DefaultTickInterval, "pause between inference iterations")
		debugMode   = flag.Bool("debug", false, "enable debug output")
		debugVision = flag.Bool("debug-vision", false, "enable per-inference debug output")
	)
	flag.Parse()

	log.Init(config.LogLevel())
	debug.Enabled = *debugMode
	debug.Vision = *debugVision

	camCfg := camera.DefaultConfig()
	if p := camera.GetPreset(*preset); p != nil {
		camCfg = *p
	} else {
		log.Warn("unknown camera preset, using default", "preset", *preset)
	}

	source, err := camera.Open(*device, camCfg)
	if err != nil {
		log.Error("camera open failed", "device", *device, "err", err)
		os.Exit(1)
	}
	defer source.Close()

	manager := camera.NewManager()
	manager.OnConfigChange = source.Apply
	if err := manager.SetConfig(camCfg); err != nil {
		log.Error("camera config rejected", "err", err)
		os.Exit(1)
	}

	slot := frame.NewSlot()
	sink := pipeline.NewSink()
	defer sink.Close()

	clsCfg := classify.DefaultConfig()
	clsCfg.ModelPath = *modelPath
	clsCfg.LabelsPath = *labelsPath
	loop := pipeline.NewLoop(slot, sink, func() (classify.Classifier, error) {
		return classify.NewDNN(clsCfg)
	}, pipeline.Options{
		Interval:      *interval,
		TopK:          3,
		LatencyWindow: config.DefaultLatencyWindow,
	})

	server := web.NewServer(*port, slot, sink, loop, manager)

	// Every captured frame lands in the slot for the inference loop and,
	// when someone is watching, the preview stream.
	source.OnFrame = func(f *frame.Frame) {
		slot.Write(f)
		server.SendCameraFrame(f.Data)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	captureErr := make(chan error, 1)
	go func() { captureErr <- source.Run(ctx) }()

	// A model-load failure surfaces here before any iteration runs and
	// terminates the process.
	loopErr := make(chan error, 1)
	go func() { loopErr <- loop.Run(ctx) }()

	server.StartAsync()

	select {
	case sig := <-sigCh:
		log.Info("shutting down", "signal", sig.String())
	case err := <-loopErr:
		if err != nil {
			log.Error("inference loop failed", "err", err)
			os.Exit(1)
		}
	case err := <-captureErr:
		if err != nil {
			log.Error("capture failed", "err", err)
			os.Exit(1)
		}
	}

	cancel()
	if err := server.Shutdown(); err != nil {
		log.Warn("web shutdown error", "err", err)
	}
	// Let the capture goroutine observe cancellation before the
	// deferred Close releases the device handle.
	<-captureErr
}
