package report

import (
	"os"
	"path/filepath"

	"github.com/ebse-lab/sevscope/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	"gopkg.in/yaml.v3"
)

// WriteManifest writes the run manifest as YAML to path, creating the
// parent directory when needed.
func WriteManifest(path string, m *model.Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return goerr.Wrap(err, "failed to marshal run manifest")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return goerr.Wrap(err, "failed to create manifest directory",
				goerr.V("dir", dir))
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return goerr.Wrap(err, "failed to write run manifest",
			goerr.V("path", path))
	}

	return nil
}
