package command

import (
	"fmt"
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/rawbytedev/jstring/pkg/codec"
)

// readInput returns the contents of --in, or of stdin when it is unset.
func (jc *JstrCommand) readInput(cmd *cobra.Command) ([]byte, error) {
	path := jc.v.GetString("in")
	if path == "" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := afero.ReadFile(jc.fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	jc.logger.Debug("read input", "path", path, "bytes", len(data))
	return data, nil
}

// writeOutput writes data to --out, or to stdout when it is unset.
func (jc *JstrCommand) writeOutput(cmd *cobra.Command, data []byte) error {
	path := jc.v.GetString("out")
	if path == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := afero.WriteFile(jc.fs, path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	jc.logger.Debug("wrote output", "path", path, "bytes", len(data))
	return nil
}

func (jc *JstrCommand) newCodec() *codec.Codec {
	return codec.New(codec.Options{Policy: jc.policy})
}
