package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"

	"github.com/woozymasta/uaszones/internal/config"
	"github.com/woozymasta/uaszones/internal/ed269"
	"github.com/woozymasta/uaszones/internal/logger"
	"github.com/woozymasta/uaszones/internal/server"
	"github.com/woozymasta/uaszones/internal/zone"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile string `short:"c" long:"config" env:"CONFIG_FILE"    description:"Path to optional configuration file"`
	Addr       string `short:"a" long:"addr"   env:"LISTEN_ADDRESS" description:"Address to listen on" default:"127.0.0.1"`
	Port       int    `short:"p" long:"port"   env:"LISTEN_PORT"    description:"Port to listen on"    default:"5000"`

	Args struct {
		File string `positional-arg-name:"file" description:"ED-269 GeoJSON input file"`
	} `positional-args:"true" required:"yes"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	opts.Logger.Setup()

	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	collection, err := ed269.Load(opts.Args.File)
	if err != nil {
		log.Fatal().Err(err).Str("file", opts.Args.File).Msg("Failed to load zone collection")
	}

	session := zone.NewSession(collection, func(c *ed269.Collection) error {
		return ed269.Save(cfg.Output.Filtered, c)
	})

	srvCtx := server.NewServerContext(session, cfg, collection.Title())
	handler := server.RequestLogger(srvCtx.Routes())

	listenAddr := fmt.Sprintf("%s:%d", opts.Addr, opts.Port)
	log.Info().
		Str("addr", listenAddr).
		Str("url", "http://"+listenAddr).
		Int("zones_loaded", len(collection.Features)).
		Msg("Interactive filter started, open the URL in a browser")

	if err := http.ListenAndServe(listenAddr, handler); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
}
