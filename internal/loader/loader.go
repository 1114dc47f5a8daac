package loader

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"Scanline/internal/geometry"
	"Scanline/internal/logger"
	"Scanline/internal/scene"

	"github.com/mattn/go-shellwords"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// LoadScene reads and validates the scene file at path. Any error aborts the
// whole load; a partial scene is never returned.
func LoadScene(path string) (*scene.Scene, error) {
	file, err := openFile(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	sc, err := ParseScene(file, path)
	if err != nil {
		return nil, err
	}
	logger.Log.Info("Scene loaded",
		zap.String("path", path),
		zap.Int("commands", len(sc.Commands)),
		zap.Int("variables", len(sc.Variables())))
	return sc, nil
}

// ParseScene parses scene text read from r. path names the source in errors.
// A relative mesh path is resolved against the directory of path, not the
// working directory, so scenes and their meshes can be moved together.
func ParseScene(r io.Reader, path string) (*scene.Scene, error) {
	p := &sceneParser{
		path:  path,
		dir:   filepath.Dir(path),
		scene: scene.New(),
	}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if err := p.parseLine(line); err != nil {
			return nil, &ParseError{Path: path, Line: lineNo, Text: line, Err: err}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, &ParseError{Path: path, Line: lineNo, Err: errors.Wrap(err, "bad line parse")}
	}
	return p.scene, nil
}

type sceneParser struct {
	path  string
	dir   string
	scene *scene.Scene
}

func (p *sceneParser) parseLine(line string) error {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return nil
	}

	parts := strings.Fields(trimmed)
	keyword := strings.ToLower(parts[0])
	args := parts[1:]

	var cmd scene.Command
	var err error
	switch keyword {
	case "point":
		cmd, err = parsePoint(args)
	case "line":
		cmd, err = parseLineCmd(args)
	case "triangle":
		cmd, err = parseTriangle(args)
	case "mesh":
		cmd, err = p.parseMesh(strings.TrimSpace(trimmed[len(parts[0]):]))
	case "identity":
		if len(args) != 0 {
			err = errors.Wrapf(ErrArgCount, "expected 0 values, found %d", len(args))
		}
		cmd = scene.Identity{}
	case "translate":
		cmd, err = parseTranslate(args)
	case "scale":
		cmd, err = parseScale(args)
	case "rotate":
		cmd, err = parseRotate(args)
	case "color":
		cmd, err = parseColor(args)
	case "animate":
		return p.parseAnimate(args)
	default:
		return errors.Wrapf(ErrUnknownCommand, "line does not have a command %q", parts[0])
	}
	if err != nil {
		return errors.Wrap(err, keyword)
	}
	p.scene.Append(cmd)
	return nil
}

func parsePoint(args []string) (scene.Command, error) {
	vs, err := parseVals(4, args)
	if err != nil {
		return nil, err
	}
	return scene.Point{P: scene.ValPoint3{X: vs[0], Y: vs[1], Z: vs[2]}, Radius: vs[3]}, nil
}

func parseLineCmd(args []string) (scene.Command, error) {
	vs, err := parseVals(6, args)
	if err != nil {
		return nil, err
	}
	return scene.Line{
		P1: scene.ValPoint3{X: vs[0], Y: vs[1], Z: vs[2]},
		P2: scene.ValPoint3{X: vs[3], Y: vs[4], Z: vs[5]},
	}, nil
}

func parseTriangle(args []string) (scene.Command, error) {
	vs, err := parseVals(9, args)
	if err != nil {
		return nil, err
	}
	return scene.Triangle{
		P1: scene.ValPoint3{X: vs[0], Y: vs[1], Z: vs[2]},
		P2: scene.ValPoint3{X: vs[3], Y: vs[4], Z: vs[5]},
		P3: scene.ValPoint3{X: vs[6], Y: vs[7], Z: vs[8]},
	}, nil
}

func parseTranslate(args []string) (scene.Command, error) {
	vs, err := parseVals(3, args)
	if err != nil {
		return nil, err
	}
	return scene.Translate{X: vs[0], Y: vs[1], Z: vs[2]}, nil
}

func parseScale(args []string) (scene.Command, error) {
	vs, err := parseVals(3, args)
	if err != nil {
		return nil, err
	}
	return scene.Scale{X: vs[0], Y: vs[1], Z: vs[2]}, nil
}

func parseRotate(args []string) (scene.Command, error) {
	vs, err := parseVals(4, args)
	if err != nil {
		return nil, err
	}
	return scene.Rotate{Theta: vs[0], Axis: scene.ValPoint3{X: vs[1], Y: vs[2], Z: vs[3]}}, nil
}

func parseColor(args []string) (scene.Command, error) {
	bs, err := parseBytes(3, args)
	if err != nil {
		return nil, err
	}
	return scene.SetColor{Color: geometry.Color{R: bs[0], G: bs[1], B: bs[2]}}, nil
}

// parseMesh expects rest to be a single double-quoted path.
func (p *sceneParser) parseMesh(rest string) (scene.Command, error) {
	if len(rest) < 2 || !strings.HasPrefix(rest, `"`) || !strings.HasSuffix(rest, `"`) {
		return nil, errors.Wrapf(ErrBadPath, "got %q", rest)
	}
	words, err := shellwords.Parse(rest)
	if err != nil || len(words) != 1 || words[0] == "" {
		return nil, errors.Wrapf(ErrBadPath, "got %q", rest)
	}

	meshPath := words[0]
	resolved := meshPath
	if !filepath.IsAbs(resolved) {
		resolved = filepath.Join(p.dir, resolved)
	}
	points, triangles, err := LoadMesh(resolved)
	if err != nil {
		return nil, err
	}
	return scene.Mesh{Path: meshPath, Points: points, Triangles: triangles}, nil
}

func (p *sceneParser) parseAnimate(args []string) error {
	if len(args) != 5 {
		return errors.Wrapf(ErrArgCount, "animate: expected a variable and 4 floats, found %d values", len(args))
	}
	fs, err := parseFloats(4, args[1:])
	if err != nil {
		return errors.Wrap(err, "animate")
	}
	return p.scene.AddAnimation(args[0], scene.Animation{From: fs[0], To: fs[1], T1: fs[2], T2: fs[3]})
}

// parseVal treats any token that is not a float literal as a variable name.
func parseVal(tok string) scene.Val {
	f, err := parseFloat(tok)
	if err != nil {
		return scene.VarVal(tok)
	}
	return scene.RawVal(f)
}

// parseFloat accepts decimal literals, inf and nan. Out of range literals
// become the matching infinity. Hex floats and underscore digit separators
// are not numbers.
func parseFloat(tok string) (float32, error) {
	if strings.ContainsAny(tok, "xX_") {
		return 0, errors.Errorf("invalid float literal %q", tok)
	}
	f, err := strconv.ParseFloat(tok, 32)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, err
	}
	return float32(f), nil
}

func parseVals(n int, args []string) ([]scene.Val, error) {
	if len(args) != n {
		return nil, errors.Wrapf(ErrArgCount, "expected %d values, found %d", n, len(args))
	}
	vals := make([]scene.Val, n)
	for i, arg := range args {
		vals[i] = parseVal(arg)
	}
	return vals, nil
}

func parseFloats(n int, args []string) ([]float32, error) {
	if len(args) != n {
		return nil, errors.Wrapf(ErrArgCount, "expected %d floats, found %d", n, len(args))
	}
	fs := make([]float32, n)
	for i, arg := range args {
		f, err := parseFloat(arg)
		if err != nil {
			return nil, errors.Wrapf(ErrBadNumber, "parsing %q as float", arg)
		}
		fs[i] = f
	}
	return fs, nil
}

func parseBytes(n int, args []string) ([]uint8, error) {
	if len(args) != n {
		return nil, errors.Wrapf(ErrArgCount, "expected %d u8s, found %d", n, len(args))
	}
	bs := make([]uint8, n)
	for i, arg := range args {
		v, err := strconv.ParseUint(arg, 10, 8)
		if err != nil {
			return nil, errors.Wrapf(ErrBadNumber, "parsing %q as u8", arg)
		}
		bs[i] = uint8(v)
	}
	return bs, nil
}

func openFile(path string) (*os.File, error) {
	file, err := os.Open(path)
	if err == nil {
		return file, nil
	}
	if os.IsNotExist(err) {
		return nil, &ParseError{Path: path, Err: errors.Wrapf(ErrMissingFile, "file %q", path)}
	}
	return nil, &ParseError{Path: path, Err: errors.Wrap(err, "opening")}
}
