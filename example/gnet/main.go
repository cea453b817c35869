// FILE: example/gnet/main.go
package main

import (
	"github.com/panjf2000/gnet/v2"

	"github.com/lixenwraith/loggers"
	"github.com/lixenwraith/loggers/compat"
)

// Example gnet event handler
type echoServer struct {
	gnet.BuiltinEventEngine
}

func (es *echoServer) OnTraffic(c gnet.Conn) gnet.Action {
	buf, _ := c.Next(-1)
	c.Write(buf)
	return gnet.None
}

func main() {
	logger, err := loggers.NewFileBuilder("/var/log/gnet/gnet.log").
		Level(loggers.SeverityDebug).
		Format(loggers.FormatJSON).
		RotateSize(64 << 20).
		Build()
	if err != nil {
		panic(err)
	}
	defer logger.Close()

	gnetAdapter := compat.NewStructuredGnetAdapter(logger)

	err = gnet.Run(
		&echoServer{},
		"tcp://127.0.0.1:9000",
		gnet.WithMulticore(true),
		gnet.WithLogger(gnetAdapter),
		gnet.WithReusePort(true),
	)
	if err != nil {
		logger.Error("gnet server stopped", "error", err)
	}
}
