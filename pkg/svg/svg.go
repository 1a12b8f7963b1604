// Package svg reads and writes the subset of SVG needed to shuttle polygonal
// chains in and out of the engine: polygon and polyline elements with a
// points attribute. Coordinates in the file are user units; the caller picks
// the scale to integer microns (1000 for millimeter documents).
package svg

import (
	"encoding/xml"
	"math"
	"strconv"
	"strings"

	"github.com/Catniped/CuraEngine/pkg/geometry"
)

// Document is the root svg element.
type Document struct {
	XMLName  xml.Name   `xml:"svg"`
	Width    string     `xml:"width,attr,omitempty"`
	Height   string     `xml:"height,attr,omitempty"`
	ViewBox  string     `xml:"viewBox,attr,omitempty"`
	Version  string     `xml:"version,attr,omitempty"`
	Xmlns    string     `xml:"xmlns,attr,omitempty"`
	Elements []*Element `xml:",any"`
}

// Element is a child of the root node. Only polygon and polyline elements
// carry geometry; anything else is kept verbatim so a round trip does not
// drop it.
type Element struct {
	XMLName xml.Name
	ID      string `xml:"id,attr,omitempty"`
	Style   string `xml:"style,attr,omitempty"`
	Points  string `xml:"points,attr,omitempty"`

	Chain  []geometry.Point `xml:"-"`
	Closed bool             `xml:"-"`
}

// Parse decodes an SVG document and converts every polygon and polyline
// points attribute to micron coordinates at the given scale (microns per
// user unit).
func Parse(data []byte, scale float64) (*Document, error) {
	var doc Document
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	for _, el := range doc.Elements {
		switch el.XMLName.Local {
		case "polygon":
			el.Closed = true
		case "polyline":
		default:
			continue
		}
		chain, err := ParsePoints(el.Points, scale)
		if err != nil {
			return nil, err
		}
		el.Chain = chain
	}
	return &doc, nil
}

// Marshal reserializes the document, regenerating each geometry element's
// points attribute from its chain.
func (doc *Document) Marshal(scale float64) ([]byte, error) {
	if doc.Xmlns == "" {
		doc.Xmlns = "http://www.w3.org/2000/svg"
	}
	for _, el := range doc.Elements {
		if el.Chain != nil {
			el.Points = FormatPoints(el.Chain, scale)
			el.XMLName.Space = ""
		}
	}
	return xml.MarshalIndent(doc, "", "  ")
}

// Polygons returns the chains of all closed elements.
func (doc *Document) Polygons() []geometry.Polygon {
	var polygons []geometry.Polygon
	for _, el := range doc.Elements {
		if el.Chain != nil && el.Closed {
			polygons = append(polygons, geometry.Polygon(el.Chain))
		}
	}
	return polygons
}

// Polylines returns the chains of all open elements.
func (doc *Document) Polylines() []geometry.Polyline {
	var polylines []geometry.Polyline
	for _, el := range doc.Elements {
		if el.Chain != nil && !el.Closed {
			polylines = append(polylines, geometry.Polyline(el.Chain))
		}
	}
	return polylines
}

// ParsePoints converts an SVG points attribute to micron coordinates.
// Coordinate pairs may be separated by whitespace or commas, per the SVG
// points grammar.
func ParsePoints(attr string, scale float64) ([]geometry.Point, error) {
	fields := strings.FieldsFunc(attr, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	points := make([]geometry.Point, 0, len(fields)/2)
	for i := 0; i+1 < len(fields); i += 2 {
		x, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, err
		}
		y, err := strconv.ParseFloat(fields[i+1], 64)
		if err != nil {
			return nil, err
		}
		points = append(points, geometry.Point{
			X: geometry.Coord(math.Round(x * scale)),
			Y: geometry.Coord(math.Round(y * scale)),
		})
	}
	return points, nil
}

// FormatPoints renders micron coordinates back to a points attribute.
func FormatPoints(points []geometry.Point, scale float64) string {
	var b strings.Builder
	for i, p := range points {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(formatNumber(float64(p.X) / scale))
		b.WriteByte(',')
		b.WriteString(formatNumber(float64(p.Y) / scale))
	}
	return b.String()
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
