package main

//go-build: CGO_ENABLED=0

import (
	"flag"

	"github.com/golang/glog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	fx "github.com/robotalks/trident/pkg/framework"
	"github.com/robotalks/trident/pkg/metrics"
	"github.com/robotalks/trident/pkg/serial"
	"github.com/robotalks/trident/pkg/telemetry"
	"github.com/robotalks/trident/pkg/throttle"
	"github.com/robotalks/trident/pkg/wire"
)

func init() {
	serial.SetupFlags()
	throttle.SetupFlags()
	telemetry.SetupFlags()
	metrics.SetupFlags()
}

func main() {
	flag.Parse()
	defer glog.Flush()

	conf := throttle.Default()
	var writer *wire.Writer
	var sender throttle.Sender
	if !conf.DryRun {
		serialConf := serial.Default()
		port, err := serialConf.Open()
		if err != nil {
			glog.Fatalf("Could not open port %s with baud rate: %d: %v", serialConf.Port, serialConf.BaudRate, err)
		}
		defer port.Close()
		writer = wire.NewWriter(port)
		sender = writer
	}

	ctl, err := conf.NewController(sender)
	if err != nil {
		glog.Fatalf("invalid schedule %q: %v", conf.Schedule, err)
	}
	glog.Infof("schedule %s at %v per tick", ctl.Policy, conf.Period())
	loop := conf.NewLoop().Add(ctl)

	if addr := metrics.ListenAddr(); addr != "" {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		m := metrics.New(reg)
		loop.Observer = m
		ctl.Observe(m)
		if writer != nil {
			writer.Observer = m
		}
		loop.AddRunnable(&metrics.Server{Addr: addr, Gatherer: reg})
	}

	pub, err := telemetry.Default().NewPublisher()
	if err != nil {
		glog.Fatalf("telemetry: %v", err)
	}
	if pub != nil {
		ctl.Observe(pub)
		loop.Add(pub)
	}

	if sender != nil {
		if err := throttle.SendZero(sender); err != nil {
			glog.Fatalf("send zero: %v", err)
		}
	}

	err = fx.NewRunner().HandleSignals().Go(loop).Wait()
	if sender != nil {
		if zerr := throttle.SendZero(sender); zerr != nil {
			glog.Errorf("send zero on exit: %v", zerr)
		}
	}
	if err != nil {
		glog.Fatal(err)
	}
}
