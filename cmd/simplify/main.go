package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/Catniped/CuraEngine/pkg/geometry"
	"github.com/Catniped/CuraEngine/pkg/render"
	"github.com/Catniped/CuraEngine/pkg/settings"
	"github.com/Catniped/CuraEngine/pkg/simplify"
	"github.com/Catniped/CuraEngine/pkg/svg"
	"github.com/Catniped/CuraEngine/pkg/verify"
)

// Input coordinates are millimeters, so one SVG user unit is 1000 microns.
const micronsPerUnit = 1000

func main() {
	resolution := flag.Float64("resolution", 0.25, "maximum resolution in mm; shorter segments are merge candidates")
	deviation := flag.Float64("deviation", 0.025, "maximum deviation in mm")
	areaDeviation := flag.Int64("area-deviation", 50000, "maximum extrusion area deviation in square microns")
	check := flag.Bool("check", false, "verify the deviation bound for every input vertex")
	output := flag.String("o", "", "output SVG file (default stdout)")
	pngOut := flag.String("png", "", "also render the result to this PNG file")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] svg-file\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}

	data, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatalf("file read error: %s", err)
	}

	doc, err := svg.Parse(data, micronsPerUnit)
	if err != nil {
		log.Fatalf("parse error: %s", err)
	}

	cfg := settings.Default()
	cfg[settings.KeyMaxResolution] = fmt.Sprint(*resolution)
	cfg[settings.KeyMaxDeviation] = fmt.Sprint(*deviation)
	cfg[settings.KeyMaxAreaDeviation] = fmt.Sprint(*areaDeviation)
	simplifier := simplify.FromSettings(cfg)

	totalIn, totalOut := 0, 0
	for _, el := range doc.Elements {
		if el.Chain == nil {
			continue
		}
		original := el.Chain
		var simplified []geometry.Point
		if el.Closed {
			simplified = []geometry.Point(simplifier.Polygon(original))
		} else {
			simplified = []geometry.Point(simplifier.Polyline(original))
		}
		totalIn += len(original)
		totalOut += len(simplified)

		if *check {
			limit := cfg.Coord(settings.KeyMaxDeviation)
			for _, v := range verify.Check(original, simplified, el.Closed, limit) {
				log.Printf("%s: vertex %d at (%d,%d) deviates %.1fµm, limit %dµm",
					el.ID, v.Index, v.Point.X, v.Point.Y, v.Distance, limit)
			}
		}

		el.Chain = simplified
	}
	log.Printf("simplified %d vertices to %d", totalIn, totalOut)

	if *pngOut != "" {
		var chains [][]geometry.Point
		var closed []bool
		for _, el := range doc.Elements {
			if el.Chain != nil {
				chains = append(chains, el.Chain)
				closed = append(closed, el.Closed)
			}
		}
		f, err := os.Create(*pngOut)
		if err != nil {
			log.Fatalf("create error: %s", err)
		}
		if err := render.PNG(f, chains, closed, render.DefaultOptions()); err != nil {
			log.Fatalf("render error: %s", err)
		}
		if err := f.Close(); err != nil {
			log.Fatalf("close error: %s", err)
		}
	}

	out, err := doc.Marshal(micronsPerUnit)
	if err != nil {
		log.Fatalf("marshal error: %s", err)
	}
	if *output == "" {
		fmt.Println(string(out))
	} else if err := os.WriteFile(*output, out, 0644); err != nil {
		log.Fatalf("file write error: %s", err)
	}
}
