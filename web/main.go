package main

import (
	"flag"

	"github.com/golang/glog"

	"github.com/df07/go-light-sampler/web/server"
)

func main() {
	port := flag.Int("port", 8080, "Port to serve on")
	flag.Parse()
	defer glog.Flush()

	glog.Infof("light sampler inspector starting on port %d", *port)
	if err := server.NewServer(*port).Start(); err != nil {
		glog.Exitf("starting server: %v", err)
	}
}
