package advanced

import (
	"embed"
	"log"
	"strconv"
	"strings"

	"github.com/JoshVarga/svgparser"
)

// Point-cloud fixtures are stored as SVG polygons, one polygon per file,
// with the cloud in the points attribute. Available by name in the fixtures/
// directory, sans extension. Anything going wrong ends the test binary through
// log.Fatalf; fixtures are test data, not input.

//go:embed fixtures
var fixtures embed.FS

func LoadFixture(name string) []Point2 {
	fixture, err := fixtures.Open("fixtures/" + name + ".svg")
	if err != nil {
		log.Fatalf("Could not load fixture %q: %v", name, err)
	}
	defer fixture.Close()

	rootEl, err := svgparser.Parse(fixture, true)
	if err != nil {
		log.Fatalf("Failed to parse fixture %q: %v", name, err)
	}

	polygons := rootEl.FindAll("polygon")
	if len(polygons) != 1 {
		log.Fatalf("Expected exactly one polygon in fixture %q, found %d", name, len(polygons))
	}

	pointStrings := strings.Fields(polygons[0].Attributes["points"])
	points := make([]Point2, 0, len(pointStrings))
	for _, pointString := range pointStrings {
		coords := strings.Split(pointString, ",")
		if len(coords) != 2 {
			log.Fatalf("Malformed point %q in fixture %q", pointString, name)
		}
		x, err := strconv.ParseFloat(coords[0], 64)
		if err != nil {
			log.Fatalf("Malformed coordinate in fixture %q: %v", name, err)
		}
		y, err := strconv.ParseFloat(coords[1], 64)
		if err != nil {
			log.Fatalf("Malformed coordinate in fixture %q: %v", name, err)
		}
		points = append(points, Point2{X: x, Y: y})
	}
	return points
}
