package render

import (
	"io/fs"
	"path"

	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"
)

// ShaderSources holds the raw contents of the two shader stage files.
type ShaderSources struct {
	Vertex   []byte
	Fragment []byte
}

// LoadShaders reads both stage files from fsys.
func LoadShaders(fsys fs.FS, vertexPath, fragmentPath string) (ShaderSources, error) {
	var sources ShaderSources
	var group errgroup.Group

	group.Go(func() error {
		data, err := readStage(fsys, "vertex", vertexPath)
		sources.Vertex = data
		return err
	})
	group.Go(func() error {
		data, err := readStage(fsys, "fragment", fragmentPath)
		sources.Fragment = data
		return err
	})

	if err := group.Wait(); err != nil {
		return ShaderSources{}, err
	}
	return sources, nil
}

// GenerateHint is attached to errors for SPIR-V stages that have not been
// compiled yet.
const GenerateHint = "compile the SPIR-V stages with: go generate ./shaders"

func readStage(fsys fs.FS, stage, name string) ([]byte, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && path.Ext(name) == ".spv" {
			return nil, errors.WithHint(errors.Wrapf(err, "reading %s shader (run go generate ./shaders)", stage), GenerateHint)
		}
		return nil, errors.Wrapf(err, "reading %s shader", stage)
	}
	if len(data) == 0 {
		return nil, errors.Errorf("%s shader %s is empty", stage, name)
	}
	return data, nil
}
