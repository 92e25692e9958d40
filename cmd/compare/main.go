package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"

	"github.com/woozymasta/uaszones/internal/ed269"
	"github.com/woozymasta/uaszones/internal/logger"
	"github.com/woozymasta/uaszones/internal/zone"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	Args struct {
		FileA string `positional-arg-name:"fileA" description:"First ED-269 GeoJSON file"`
		FileB string `positional-arg-name:"fileB" description:"Second ED-269 GeoJSON file"`
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

	a, err := ed269.Load(opts.Args.FileA)
	if err != nil {
		log.Fatal().Err(err).Str("file", opts.Args.FileA).Msg("Failed to load zone collection")
	}

	b, err := ed269.Load(opts.Args.FileB)
	if err != nil {
		log.Fatal().Err(err).Str("file", opts.Args.FileB).Msg("Failed to load zone collection")
	}

	onlyA, onlyB, err := zone.Diff(a, b)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to compare collections")
	}

	printSide(opts.Args.FileA, onlyA)
	fmt.Println()
	printSide(opts.Args.FileB, onlyB)
}

func printSide(file string, only *ed269.Collection) {
	fmt.Printf("Features only in %s (%d):\n", file, len(only.Features))

	ids := make([]string, 0, len(only.Features))
	anonymous := 0
	for i := range only.Features {
		if id := only.Features[i].Identifier; id != "" {
			ids = append(ids, id)
		} else {
			anonymous++
		}
	}
	sort.Strings(ids)

	for _, id := range ids {
		fmt.Printf("  %s\n", id)
	}
	if anonymous > 0 {
		fmt.Printf("  (plus %d without identifier)\n", anonymous)
	}
}
