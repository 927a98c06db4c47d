package main

import (
	"flag"
	"io"

	"github.com/xtding233/volcano-backend/internal/game"
)

type options struct {
	dataDir   string
	configDir string
	profile   string
	level     int
	layout    int
	asJSON    bool
	verbose   bool
}

// parseArgs reads the command line. Only settings flags actually given end up in the overrides,
// so an unset flag never masks the profile's value.
func parseArgs(args []string, errOut io.Writer) (options, game.Overrides, error) {
	fs := flag.NewFlagSet("predict", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var opt options
	fs.StringVar(&opt.dataDir, "data-dir", "data", "Directory with layouts.bin and set_pieces.yaml")
	fs.StringVar(&opt.configDir, "config-dir", "config", "Directory with profiles/*.yaml")
	fs.StringVar(&opt.profile, "profile", "", "Settings profile to start from")
	fs.IntVar(&opt.level, "level", -1, "Simulate only this floor (needs -layout)")
	fs.IntVar(&opt.layout, "layout", -1, "Layout for -level")
	fs.BoolVar(&opt.asJSON, "json", false, "Print JSON instead of text")
	fs.BoolVar(&opt.verbose, "v", false, "Debug logging to stderr")

	seed := fs.Int("seed", 0, "Game seed")
	days := fs.Uint("days", 0, "Days played")
	maxLuck := fs.Uint("max-luck", 0, "Luck buff level from food")
	legacy := fs.Bool("legacy", false, "Use the legacy seed mixer")
	postPatch := fs.Bool("post-patch", false, "Save is on 1.6.4 or later")
	caldera := fs.Bool("caldera", false, "Caldera is unlocked")
	coconut := fs.Bool("coconut", false, "Golden coconut has been cracked")
	charm := fs.Bool("charm", false, "Special charm is owned")

	if err := fs.Parse(args); err != nil {
		return options{}, game.Overrides{}, err
	}

	var o game.Overrides
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "seed":
			v := int32(*seed)
			o.Seed = &v
		case "days":
			v := uint32(*days)
			o.DaysPlayed = &v
		case "max-luck":
			v := uint32(*maxLuck)
			o.MaxLuckLevel = &v
		case "legacy":
			o.LegacyRNG = legacy
		case "post-patch":
			o.PostPatch = postPatch
		case "caldera":
			o.HasCaldera = caldera
		case "coconut":
			o.CoconutUnlocked = coconut
		case "charm":
			o.SpecialCharm = charm
		}
	})
	return opt, o, nil
}
