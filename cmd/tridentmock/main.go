package main

import (
	"context"
	"flag"

	"github.com/golang/glog"

	fx "github.com/robotalks/trident/pkg/framework"
	"github.com/robotalks/trident/pkg/serial"
	"github.com/robotalks/trident/pkg/wire"
)

//go-build: CGO_ENABLED=0

func init() {
	serial.SetupFlags()
}

// receive acts as cockpit: verifies every frame received on the port.
func receive(port *serial.Port) error {
	var total, bad int
	s := wire.NewScanner(port)
	for s.Scan() {
		f := s.Frame()
		total++
		if !f.Valid() {
			bad++
			glog.Warningf("checksum mismatch: %s expect %02x", f, wire.Checksum(f.Payload()))
			continue
		}
		glog.Infof("%s", f)
	}
	glog.Infof("received %d frames, %d bad", total, bad)
	return s.Err()
}

func main() {
	flag.Parse()
	defer glog.Flush()

	port, err := serial.Default().Open()
	if err != nil {
		glog.Fatal(err)
	}
	err = fx.NewRunner().HandleSignals().Go(fx.RunFunc(func(ctx context.Context) error {
		return fx.RunWithContextCloser(ctx, port, func() error {
			return receive(port)
		})
	})).Wait()
	if err != nil {
		glog.Fatal(err)
	}
}
