package main

import (
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"

	"github.com/woozymasta/uaszones/internal/config"
	"github.com/woozymasta/uaszones/internal/ed269"
	"github.com/woozymasta/uaszones/internal/logger"
	"github.com/woozymasta/uaszones/internal/mapgen"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile string `short:"c" long:"config" env:"CONFIG_FILE" description:"Path to optional configuration file"`

	Args struct {
		File string `positional-arg-name:"file" description:"Filtered ED-269 GeoJSON file (defaults to the configured filtered output)"`
	} `positional-args:"true"`
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

	file := opts.Args.File
	if file == "" {
		file = cfg.Output.Filtered
	}

	collection, err := ed269.Load(file)
	if err != nil {
		log.Fatal().Err(err).Str("file", file).Msg("Failed to load zone collection")
	}

	page, err := mapgen.Render(collection, mapgen.Options{
		TileURL:     cfg.Map.TileURL,
		Attribution: cfg.Map.Attribution,
		Zoom:        cfg.Map.Zoom,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to render map")
	}

	if err := os.WriteFile(cfg.Output.Map, page, 0644); err != nil {
		log.Fatal().Err(err).Str("file", cfg.Output.Map).Msg("Failed to write map document")
	}

	log.Info().
		Str("file", cfg.Output.Map).
		Int("zones", len(collection.Features)).
		Msg("Map document written")
}
