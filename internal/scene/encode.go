package scene

import (
	"bufio"
	"io"

	"github.com/pkg/errors"
)

// Encode writes s in the scene file format: one command per line in order,
// followed by the animation table grouped by variable name.
func Encode(w io.Writer, s *Scene) error {
	bw := bufio.NewWriter(w)
	for _, cmd := range s.Commands {
		bw.WriteString(cmd.String())
		bw.WriteByte('\n')
	}
	for _, name := range s.Variables() {
		for _, a := range s.vars[name] {
			bw.WriteString("animate " + name + " " + a.String() + "\n")
		}
	}
	return errors.Wrap(bw.Flush(), "writing scene")
}
