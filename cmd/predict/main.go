// Command predict prints one day's volcano dungeon prediction for a save.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/xtding233/volcano-backend/internal/game"
	"github.com/xtding233/volcano-backend/internal/logger"
	"github.com/xtding233/volcano-backend/internal/mapdata"
	"github.com/xtding233/volcano-backend/internal/volcano"
)

func main() {
	opt, o, err := parseArgs(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		os.Exit(2)
	}

	lvl := "warn"
	if opt.verbose {
		lvl = "debug"
	}
	logger.SetOutput(os.Stderr, "text", lvl)

	_, settings, err := game.NewLoader(opt.configDir).Resolve(opt.profile, o)
	if err != nil {
		log.Fatalf("settings: %v", err)
	}
	tables, err := mapdata.NewLoader(opt.dataDir).Load()
	if err != nil {
		log.Fatalf("map tables: %v", err)
	}
	e := volcano.NewEngine(tables)

	if opt.level >= 0 {
		v, err := e.SimulateFloor(settings, opt.level, opt.layout, nil)
		if err != nil {
			log.Fatalf("floor: %v", err)
		}
		if opt.asJSON {
			printJSON(v)
			return
		}
		printFloor(v)
		return
	}

	p, err := e.Predict(settings)
	if err != nil {
		log.Fatalf("predict: %v", err)
	}
	if opt.asJSON {
		printJSON(p)
		return
	}
	if err := volcano.WriteText(os.Stdout, p); err != nil {
		log.Fatal(err)
	}
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		log.Fatal(err)
	}
}

func printFloor(v *volcano.FloorView) {
	fmt.Printf("floor %d: layout %d (%s), flipped %t\n", v.Level, v.Layout, v.Kind, v.Flipped)
	fmt.Println(strings.Join(v.Tiles.Rows(), "\n"))
	for _, p := range v.Pieces {
		fmt.Printf("set piece at (%d,%d) size %d\n", p.X, p.Y, p.Size)
	}
	for _, iv := range v.Loot {
		names := make([]string, len(iv.Value))
		for i, g := range iv.Value {
			names[i] = g.String()
		}
		fmt.Printf("luck %.4f to %.4f: %s\n", volcano.DisplayLuck(iv.Min), volcano.DisplayLuck(iv.Max), strings.Join(names, ", "))
	}
	for _, n := range v.Notes {
		fmt.Println(n)
	}
}
