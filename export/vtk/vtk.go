// Package vtk reads and writes VTK XML unstructured grids (.vtu) in ASCII
// encoding, and attaches prediction fields to an existing mesh as point
// data.
//
// Only single-piece files are supported. Binary and appended encodings are
// rejected with ErrUnsupportedEncoding.
package vtk

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

var (
	ErrNotUnstructured     = errors.New("vtk: file is not an UnstructuredGrid")
	ErrUnsupportedEncoding = errors.New("vtk: only ascii data arrays are supported")
	ErrPointCountMismatch  = errors.New("vtk: array length does not match number of points")
	ErrMalformed           = errors.New("vtk: malformed grid")
)

// PredictionArray is the point-data array name used by [ExportPrediction].
const PredictionArray = "prediction"

// Array is a named data array with Components values per tuple.
type Array struct {
	Name       string
	Components int
	Values     []float64
}

// Tuples returns the number of tuples in the array.
func (a Array) Tuples() int {
	if a.Components <= 0 {
		return 0
	}
	return len(a.Values) / a.Components
}

// Grid is an unstructured grid: points, cells in VTK offset form, and
// attached point and cell data.
type Grid struct {
	Points       [][3]float64
	Connectivity []int64
	Offsets      []int64
	Types        []uint8
	PointData    []Array
	CellData     []Array
}

// NumPoints returns the number of points.
func (g *Grid) NumPoints() int { return len(g.Points) }

// NumCells returns the number of cells.
func (g *Grid) NumCells() int { return len(g.Types) }

// Clone returns a deep copy of g.
func (g *Grid) Clone() *Grid {
	out := &Grid{
		Points:       append([][3]float64(nil), g.Points...),
		Connectivity: append([]int64(nil), g.Connectivity...),
		Offsets:      append([]int64(nil), g.Offsets...),
		Types:        append([]uint8(nil), g.Types...),
		PointData:    cloneArrays(g.PointData),
		CellData:     cloneArrays(g.CellData),
	}
	return out
}

func cloneArrays(in []Array) []Array {
	if in == nil {
		return nil
	}
	out := make([]Array, len(in))
	for i, a := range in {
		out[i] = Array{Name: a.Name, Components: a.Components, Values: append([]float64(nil), a.Values...)}
	}
	return out
}

// PointArray returns the point-data array called name.
func (g *Grid) PointArray(name string) (Array, bool) {
	for _, a := range g.PointData {
		if a.Name == name {
			return a, true
		}
	}
	return Array{}, false
}

// AddPointArray attaches a, replacing any existing point array with the
// same name.
func (g *Grid) AddPointArray(a Array) error {
	if a.Components <= 0 {
		return fmt.Errorf("vtk: array %q: components must be > 0", a.Name)
	}
	if len(a.Values) != a.Components*len(g.Points) {
		return fmt.Errorf("%w: %q has %d values, want %d×%d",
			ErrPointCountMismatch, a.Name, len(a.Values), len(g.Points), a.Components)
	}
	for i := range g.PointData {
		if g.PointData[i].Name == a.Name {
			g.PointData[i] = a
			return nil
		}
	}
	g.PointData = append(g.PointData, a)
	return nil
}

// AttachVector stores one scalar per point as a 3-component vector array
// whose components all equal the scalar.
func (g *Grid) AttachVector(name string, scalars []float64) error {
	if len(scalars) != len(g.Points) {
		return fmt.Errorf("%w: %q has %d values for %d points", ErrPointCountMismatch, name, len(scalars), len(g.Points))
	}
	values := make([]float64, 3*len(scalars))
	for i, v := range scalars {
		values[3*i] = v
		values[3*i+1] = v
		values[3*i+2] = v
	}
	return g.AddPointArray(Array{Name: name, Components: 3, Values: values})
}

// ExportPrediction reads the mesh at meshPath, attaches pred as the
// "prediction" point array on a copy, and writes it to savePath. Parent
// directories of savePath are created as needed.
func ExportPrediction(meshPath, savePath string, pred []float64) error {
	mesh, err := ReadFile(meshPath)
	if err != nil {
		return err
	}
	grid := mesh.Clone()
	if err := grid.AttachVector(PredictionArray, pred); err != nil {
		return err
	}
	return WriteFile(savePath, grid)
}

// ReadFile reads a .vtu file.
func ReadFile(path string) (*Grid, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	g, err := Read(fh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// WriteFile writes g to path, creating parent directories.
func WriteFile(path string, g *Grid) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	fh, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(fh, g); err != nil {
		fh.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return fh.Close()
}

// Read parses an ASCII VTK XML unstructured grid.
func Read(r io.Reader) (*Grid, error) {
	var doc xmlFile
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("vtk: decode: %w", err)
	}
	if doc.Type != "UnstructuredGrid" {
		return nil, fmt.Errorf("%w: type=%q", ErrNotUnstructured, doc.Type)
	}
	p := doc.Grid.Piece

	g := &Grid{}

	if len(p.Points.Arrays) != 1 {
		return nil, fmt.Errorf("%w: expected one Points array, got %d", ErrMalformed, len(p.Points.Arrays))
	}
	coords, err := parseFloats(p.Points.Arrays[0])
	if err != nil {
		return nil, err
	}
	if len(coords) != 3*p.NumberOfPoints {
		return nil, fmt.Errorf("%w: %d coordinates for %d points", ErrMalformed, len(coords), p.NumberOfPoints)
	}
	g.Points = make([][3]float64, p.NumberOfPoints)
	for i := range g.Points {
		g.Points[i] = [3]float64{coords[3*i], coords[3*i+1], coords[3*i+2]}
	}

	for _, a := range p.Cells.Arrays {
		vals, err := parseInts(a)
		if err != nil {
			return nil, err
		}
		switch a.Name {
		case "connectivity":
			g.Connectivity = vals
		case "offsets":
			g.Offsets = vals
		case "types":
			g.Types = make([]uint8, len(vals))
			for i, v := range vals {
				g.Types[i] = uint8(v)
			}
		}
	}
	if len(g.Types) != p.NumberOfCells || len(g.Offsets) != p.NumberOfCells {
		return nil, fmt.Errorf("%w: %d types and %d offsets for %d cells",
			ErrMalformed, len(g.Types), len(g.Offsets), p.NumberOfCells)
	}

	if g.PointData, err = parseArrays(p.PointData.Arrays); err != nil {
		return nil, err
	}
	if g.CellData, err = parseArrays(p.CellData.Arrays); err != nil {
		return nil, err
	}
	return g, nil
}

// Write serializes g as an ASCII VTK XML unstructured grid.
func Write(w io.Writer, g *Grid) error {
	coords := make([]float64, 0, 3*len(g.Points))
	for _, pt := range g.Points {
		coords = append(coords, pt[0], pt[1], pt[2])
	}
	types := make([]int64, len(g.Types))
	for i, t := range g.Types {
		types[i] = int64(t)
	}

	doc := xmlFile{
		Type:      "UnstructuredGrid",
		Version:   "0.1",
		ByteOrder: "LittleEndian",
		Grid: xmlGrid{Piece: xmlPiece{
			NumberOfPoints: len(g.Points),
			NumberOfCells:  len(g.Types),
			PointData:      xmlArrays{Arrays: formatArrays(g.PointData)},
			CellData:       xmlArrays{Arrays: formatArrays(g.CellData)},
			Points: xmlArrays{Arrays: []xmlArray{
				{Type: "Float64", Name: "Points", Components: 3, Format: "ascii", Data: joinFloats(coords)},
			}},
			Cells: xmlArrays{Arrays: []xmlArray{
				{Type: "Int64", Name: "connectivity", Format: "ascii", Data: joinInts(g.Connectivity)},
				{Type: "Int64", Name: "offsets", Format: "ascii", Data: joinInts(g.Offsets)},
				{Type: "UInt8", Name: "types", Format: "ascii", Data: joinInts(types)},
			}},
		}},
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("vtk: encode: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func parseArrays(in []xmlArray) ([]Array, error) {
	var out []Array
	for _, a := range in {
		vals, err := parseFloats(a)
		if err != nil {
			return nil, err
		}
		comps := a.Components
		if comps == 0 {
			comps = 1
		}
		out = append(out, Array{Name: a.Name, Components: comps, Values: vals})
	}
	return out, nil
}

func formatArrays(in []Array) []xmlArray {
	out := make([]xmlArray, len(in))
	for i, a := range in {
		out[i] = xmlArray{
			Type:       "Float64",
			Name:       a.Name,
			Components: a.Components,
			Format:     "ascii",
			Data:       joinFloats(a.Values),
		}
	}
	return out
}

func parseFloats(a xmlArray) ([]float64, error) {
	if a.Format != "ascii" {
		return nil, fmt.Errorf("%w: array %q has format %q", ErrUnsupportedEncoding, a.Name, a.Format)
	}
	fields := strings.Fields(a.Data)
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("vtk: array %q value %d: %w", a.Name, i, err)
		}
		out[i] = v
	}
	return out, nil
}

func parseInts(a xmlArray) ([]int64, error) {
	if a.Format != "ascii" {
		return nil, fmt.Errorf("%w: array %q has format %q", ErrUnsupportedEncoding, a.Name, a.Format)
	}
	fields := strings.Fields(a.Data)
	out := make([]int64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("vtk: array %q value %d: %w", a.Name, i, err)
		}
		out[i] = v
	}
	return out, nil
}

func joinFloats(vals []float64) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, " ")
}

func joinInts(vals []int64) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.FormatInt(v, 10)
	}
	return strings.Join(parts, " ")
}

type xmlFile struct {
	XMLName   xml.Name `xml:"VTKFile"`
	Type      string   `xml:"type,attr"`
	Version   string   `xml:"version,attr,omitempty"`
	ByteOrder string   `xml:"byte_order,attr,omitempty"`
	Grid      xmlGrid  `xml:"UnstructuredGrid"`
}

type xmlGrid struct {
	Piece xmlPiece `xml:"Piece"`
}

type xmlPiece struct {
	NumberOfPoints int       `xml:"NumberOfPoints,attr"`
	NumberOfCells  int       `xml:"NumberOfCells,attr"`
	PointData      xmlArrays `xml:"PointData"`
	CellData       xmlArrays `xml:"CellData"`
	Points         xmlArrays `xml:"Points"`
	Cells          xmlArrays `xml:"Cells"`
}

type xmlArrays struct {
	Arrays []xmlArray `xml:"DataArray"`
}

type xmlArray struct {
	Type       string `xml:"type,attr"`
	Name       string `xml:"Name,attr,omitempty"`
	Components int    `xml:"NumberOfComponents,attr,omitempty"`
	Format     string `xml:"format,attr"`
	Data       string `xml:",chardata"`
}
