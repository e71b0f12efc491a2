package adapters

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"modpack-resolver/internal/ports"
	"modpack-resolver/internal/types"
)

// OutputFileAdapter writes resolution reports, YAML by default or JSON
// when the path says so.
type OutputFileAdapter struct{}

func NewOutputFileAdapter() OutputFileAdapter {
	return OutputFileAdapter{}
}

func (a OutputFileAdapter) WriteReport(path string, report types.ResolutionReport) error {
	if path == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("output path is empty")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to create output directory").
				WithCause(err)
		}
	}

	var data []byte
	var err error
	if filepath.Ext(path) == ".json" {
		data, err = json.MarshalIndent(report, "", "  ")
	} else {
		data, err = yaml.Marshal(report)
	}
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode resolution report").
			WithCause(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write resolution report").
			WithCause(err)
	}
	return nil
}

var _ ports.OutputWriterPort = OutputFileAdapter{}
