package command

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rawbytedev/jstring"
	"github.com/rawbytedev/jstring/pkg/codec"
)

// AddTokenizeCommand adds the tokenize subcommand to root.
func AddTokenizeCommand(root *cobra.Command, jc *JstrCommand) {
	cmd := &cobra.Command{
		Use:   "tokenize",
		Short: "Split UTF-8 input into tokens, one per line",
		Long: `Split UTF-8 input on any of the delimiter characters and print one token
per line. Runs of delimiters separate a single pair of tokens and empty
tokens are never printed.`,
		Args: cobra.NoArgs,
		RunE: jc.runTokenize,
	}
	cmd.Flags().String("delim", " \t\r\n", "delimiter characters")
	root.AddCommand(cmd)
}

func (jc *JstrCommand) runTokenize(cmd *cobra.Command, args []string) error {
	data, err := jc.readInput(cmd)
	if err != nil {
		return err
	}
	delim, err := codec.DecodeString(jc.v.GetString("delim"))
	if err != nil {
		return fmt.Errorf("invalid delimiter: %w", err)
	}
	if delim.Len() == 0 {
		return fmt.Errorf("delimiter must not be empty")
	}
	units, err := jc.newCodec().DecodeUTF8(data)
	if err != nil {
		jc.logger.Error("tokenize failed", "policy", jc.policy, "error", err)
		return err
	}

	var out bytes.Buffer
	toks := jstring.Tokenize(units, delim)
	for _, tok := range toks {
		out.WriteString(jstring.ToString(tok))
		out.WriteByte('\n')
	}
	jc.logger.Debug("tokenized", "units", units.Len(), "tokens", len(toks))
	return jc.writeOutput(cmd, out.Bytes())
}
