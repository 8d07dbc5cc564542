package command

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rawbytedev/jstring/internal/common"
	"github.com/rawbytedev/jstring/pkg/codec"
	"github.com/rawbytedev/jstring/pkg/wire"
)

var errOddInput = errors.New("UTF-16LE input has an odd number of bytes")

// AddDecodeCommand adds the decode subcommand to root.
func AddDecodeCommand(root *cobra.Command, jc *JstrCommand) {
	cmd := &cobra.Command{
		Use:   "decode",
		Short: "Convert UTF-16LE input to UTF-8",
		Long: `Convert UTF-16LE input to UTF-8. Input ends at the first zero unit.

With --frame the input is a frame written by encode --frame. An error frame
makes the command fail with the error it carries.`,
		Args: cobra.NoArgs,
		RunE: jc.runDecode,
	}
	cmd.Flags().Bool("frame", false, "read a frame instead of raw UTF-16LE")
	root.AddCommand(cmd)
}

func (jc *JstrCommand) runDecode(cmd *cobra.Command, args []string) error {
	data, err := jc.readInput(cmd)
	if err != nil {
		return err
	}

	var units []uint16
	if jc.v.GetBool("frame") {
		units, err = jc.unframe(data)
		if err != nil {
			return err
		}
	} else {
		if len(data)%2 != 0 {
			return errOddInput
		}
		units = make([]uint16, len(data)/2+1)
		common.UnitsFromLE(units, data)
	}

	out, err := jc.newCodec().EncodeUTF16(units)
	if err != nil {
		jc.logger.Error("decode failed", "policy", jc.policy, "error", err)
		return err
	}
	jc.logger.Debug("decoded", "units", codec.Units(units).Len(), "bytes", out.Len())
	return jc.writeOutput(cmd, out[:out.Len()])
}

func (jc *JstrCommand) unframe(data []byte) ([]uint16, error) {
	typ, err := wire.PeekType(data)
	if err != nil {
		return nil, err
	}
	dec := wire.NewDecoder(wire.Options{})
	defer dec.Close()
	switch typ {
	case wire.TypeUnits:
		return dec.DecodeUnits(data)
	case wire.TypeError:
		remote, err := dec.DecodeError(data)
		if err != nil {
			return nil, err
		}
		jc.logger.Error("input is an error frame", "code", remote.Code, "class", remote.Code.ClassName())
		return nil, remote
	default:
		return nil, fmt.Errorf("%w: 0x%02x", wire.ErrWrongType, typ)
	}
}
