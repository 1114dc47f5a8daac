package loader

import (
	"bufio"
	"io"
	"strings"

	"Scanline/internal/geometry"
	"Scanline/internal/logger"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// LoadMesh reads a mesh file: a "points" line, vertex rows of three floats,
// a "triangles" line, then index rows of three bytes until end of file.
// Blank lines are ignored. Every index must address a loaded vertex.
func LoadMesh(path string) ([]geometry.Point3, []int, error) {
	file, err := openFile(path)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	points, triangles, err := ParseMesh(file, path)
	if err != nil {
		return nil, nil, err
	}
	logger.Log.Debug("Mesh loaded",
		zap.String("path", path),
		zap.Int("vertices", len(points)),
		zap.Int("triangles", len(triangles)/3))
	return points, triangles, nil
}

type meshSection int

const (
	sectionHeader meshSection = iota
	sectionPoints
	sectionTriangles
)

// ParseMesh parses mesh text read from r; path is used in errors.
func ParseMesh(r io.Reader, path string) ([]geometry.Point3, []int, error) {
	var points []geometry.Point3
	var triangles []int

	fail := func(lineNo int, line string, err error) error {
		return &ParseError{Path: path, Line: lineNo, Text: line, Err: err}
	}

	section := sectionHeader
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		switch section {
		case sectionHeader:
			if trimmed != "points" {
				return nil, nil, fail(lineNo, line, errors.Wrap(ErrMalformedMesh, `expected first line to be "points"`))
			}
			section = sectionPoints
		case sectionPoints:
			if trimmed == "triangles" {
				section = sectionTriangles
				continue
			}
			fs, err := parseFloats(3, strings.Fields(trimmed))
			if err != nil {
				return nil, nil, fail(lineNo, line, errors.Wrap(ErrMalformedMesh, err.Error()))
			}
			points = append(points, geometry.Point3{X: fs[0], Y: fs[1], Z: fs[2]})
		case sectionTriangles:
			bs, err := parseBytes(3, strings.Fields(trimmed))
			if err != nil {
				return nil, nil, fail(lineNo, line, errors.Wrap(ErrMalformedMesh, err.Error()))
			}
			for _, b := range bs {
				if int(b) >= len(points) {
					return nil, nil, fail(lineNo, line,
						errors.Wrapf(ErrIndexRange, "index %d with %d vertices", b, len(points)))
				}
				triangles = append(triangles, int(b))
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fail(lineNo, "", errors.Wrap(err, "bad line parse"))
	}

	switch section {
	case sectionHeader:
		return nil, nil, fail(lineNo, "", errors.Wrap(ErrTruncated, `expected "points"`))
	case sectionPoints:
		return nil, nil, fail(lineNo, "", errors.Wrap(ErrTruncated, `expected "triangles"`))
	}
	return points, triangles, nil
}
