package main

import (
	"flag"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/abates/control4amp"
	"github.com/abates/control4amp/api"
	"github.com/tarm/serial"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the config file")
	addr := flag.String("addr", "127.0.0.1:8000", "HTTP listen address")
	verbose := flag.Bool("verbose", false, "log wire traffic")
	flag.Parse()

	cfg, err := control4amp.LoadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	options := []control4amp.Option{}
	if *verbose {
		options = append(options, control4amp.VerboseOption())
	}
	if cfg.SerialPort != "" {
		// The stream dialect is plain CRLF text, so it runs over RS-232
		// just as well as TCP. The port's own read timeout stands in for
		// the socket deadline.
		options = append(options, control4amp.ConnectorOption(func() (io.ReadWriteCloser, error) {
			return serial.OpenPort(&serial.Config{
				Name:        cfg.SerialPort,
				Baud:        9600,
				ReadTimeout: 5 * time.Second,
			})
		}))
	}

	amp, err := control4amp.New(cfg, options...)
	if err != nil {
		log.Fatal(err)
	}
	defer amp.Close()
	log.Printf("Amp %q is setup with %d zones", amp.Name(), len(amp.Zones()))

	srv := &http.Server{
		Handler: api.New(amp),
		Addr:    *addr,
		// Good practice: enforce timeouts for servers you create!
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}
