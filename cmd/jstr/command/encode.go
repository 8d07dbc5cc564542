package command

import (
	"github.com/spf13/cobra"

	"github.com/rawbytedev/jstring/internal/common"
	"github.com/rawbytedev/jstring/pkg/wire"
)

// AddEncodeCommand adds the encode subcommand to root.
func AddEncodeCommand(root *cobra.Command, jc *JstrCommand) {
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Convert UTF-8 input to UTF-16LE",
		Long: `Convert UTF-8 input to UTF-16LE code units. Input ends at the first NUL byte.

With --frame the units are written as a checksummed frame, and a conversion
failure is written as an error frame before the command fails.`,
		Args: cobra.NoArgs,
		RunE: jc.runEncode,
	}
	cmd.Flags().Bool("frame", false, "write a frame instead of raw UTF-16LE")
	cmd.Flags().Bool("zstd", false, "zstd-compress the frame payload (implies --frame)")
	root.AddCommand(cmd)
}

func (jc *JstrCommand) runEncode(cmd *cobra.Command, args []string) error {
	data, err := jc.readInput(cmd)
	if err != nil {
		return err
	}
	compress := jc.v.GetBool("zstd")
	framed := jc.v.GetBool("frame") || compress

	units, convErr := jc.newCodec().DecodeUTF8(data)
	if !framed {
		if convErr != nil {
			jc.logger.Error("encode failed", "policy", jc.policy, "error", convErr)
			return convErr
		}
		jc.logger.Debug("encoded", "bytes", len(data), "units", units.Len())
		return jc.writeOutput(cmd, common.AppendUnitsLE(nil, units[:units.Len()]))
	}

	enc := wire.NewEncoder(wire.Options{Compress: compress})
	defer enc.Close()
	if convErr != nil {
		jc.logger.Error("encode failed", "policy", jc.policy, "error", convErr)
		frame, err := enc.EncodeError(convErr)
		if err != nil {
			return err
		}
		if err := jc.writeOutput(cmd, frame); err != nil {
			return err
		}
		return convErr
	}
	frame, err := enc.EncodeUnits(units)
	if err != nil {
		return err
	}
	jc.logger.Debug("encoded", "bytes", len(data), "units", units.Len(), "frame", len(frame), "zstd", compress)
	return jc.writeOutput(cmd, frame)
}
