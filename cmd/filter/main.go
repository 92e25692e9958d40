package main

import (
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"

	"github.com/woozymasta/uaszones/internal/config"
	"github.com/woozymasta/uaszones/internal/ed269"
	"github.com/woozymasta/uaszones/internal/geo"
	"github.com/woozymasta/uaszones/internal/logger"
	"github.com/woozymasta/uaszones/internal/mapgen"
	"github.com/woozymasta/uaszones/internal/zone"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile string `short:"c" long:"config"    env:"CONFIG_FILE" description:"Path to optional configuration file"`
	Map        bool   `short:"m" long:"map"       description:"Also render the filtered zones to a map document"`
	RCCompat   bool   `short:"r" long:"rc-compat" description:"Strip date-bounded applicability for remote controller import"`

	Args struct {
		File      string  `positional-arg-name:"file" description:"ED-269 GeoJSON input file"`
		Latitude  string  `positional-arg-name:"latitude" description:"Latitude in DMS (e.g. \"45 27 55N\")"`
		Longitude string  `positional-arg-name:"longitude" description:"Longitude in DMS (e.g. \"9 11 20E\")"`
		Radius    float64 `positional-arg-name:"radius" description:"Search radius in kilometers"`
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

	center, err := geo.ParsePoint(opts.Args.Latitude, opts.Args.Longitude)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to parse reference point")
	}

	collection, err := ed269.Load(opts.Args.File)
	if err != nil {
		log.Fatal().Err(err).Str("file", opts.Args.File).Msg("Failed to load zone collection")
	}

	filtered, err := zone.Filter(collection, center, opts.Args.Radius)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to filter zones")
	}

	if opts.RCCompat {
		if n := zone.StripDateApplicability(filtered); n > 0 {
			log.Info().Int("features", n).Msg("Stripped date-bounded applicability")
		}
	}
	zone.Annotate(filtered)

	if err := ed269.Save(cfg.Output.Filtered, filtered); err != nil {
		log.Fatal().Err(err).Str("file", cfg.Output.Filtered).Msg("Failed to write filtered collection")
	}

	log.Info().
		Str("file", cfg.Output.Filtered).
		Int("zones_total", len(collection.Features)).
		Int("zones_matched", len(filtered.Features)).
		Float64("lat", center.Lat()).
		Float64("lon", center.Lon()).
		Float64("radius_km", opts.Args.Radius).
		Msg("Filtered collection written")

	if !opts.Map {
		return
	}

	page, err := mapgen.Render(filtered, mapgen.Options{
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

	log.Info().Str("file", cfg.Output.Map).Msg("Map document written")
}
