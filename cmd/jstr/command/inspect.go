package command

import (
	"bytes"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rawbytedev/jstring/pkg/codec"
)

// Report describes a UTF-8 input as seen from UTF-16.
type Report struct {
	Bytes          int    `yaml:"bytes"`
	Units          int    `yaml:"units"`
	CodePoints     int    `yaml:"code_points"`
	SurrogatePairs int    `yaml:"surrogate_pairs"`
	Valid          bool   `yaml:"valid"`
	Policy         string `yaml:"policy"`
	Error          string `yaml:"error,omitempty"`
}

// AddInspectCommand adds the inspect subcommand to root.
func AddInspectCommand(root *cobra.Command, jc *JstrCommand) {
	root.AddCommand(&cobra.Command{
		Use:   "inspect",
		Short: "Print a YAML report on UTF-8 input",
		Long: `Print the byte, code unit, code point and surrogate pair counts of UTF-8
input as YAML. Under the strict policy malformed input is reported, not
counted. Under the lenient policy it is counted as converted.`,
		Args: cobra.NoArgs,
		RunE: jc.runInspect,
	})
}

func (jc *JstrCommand) runInspect(cmd *cobra.Command, args []string) error {
	data, err := jc.readInput(cmd)
	if err != nil {
		return err
	}
	rep := inspect(jc.newCodec(), data)
	rep.Policy = jc.policy.String()

	var out bytes.Buffer
	enc := yaml.NewEncoder(&out)
	enc.SetIndent(2)
	if err := enc.Encode(rep); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	return jc.writeOutput(cmd, out.Bytes())
}

func inspect(c *codec.Codec, data []byte) Report {
	b := codec.Bytes(data)
	rep := Report{Bytes: b.Len(), Valid: codec.Valid(data)}
	units, err := c.DecodeUTF8(data)
	if err != nil {
		rep.Error = err.Error()
		return rep
	}
	rep.Units = units.Len()
	for i := 0; i < rep.Units; i++ {
		if codec.IsHighSurrogate(units[i]) && i+1 < rep.Units && codec.IsLowSurrogate(units[i+1]) {
			rep.SurrogatePairs++
			i++
		}
		rep.CodePoints++
	}
	return rep
}
