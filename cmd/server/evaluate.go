package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Ko-stant/robot-path-service/internal/geometry"
	"github.com/Ko-stant/robot-path-service/internal/protocol"
)

type evaluateOutput struct {
	Result        int               `json:"result"`
	FinalPosition geometry.Position `json:"finalPosition"`
	Commands      int               `json:"commands"`
	Duration      float64           `json:"duration"`
}

// newEvaluateCmd evaluates a single enter-path request offline, without
// storing it.
func newEvaluateCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "evaluate [request.json]",
		Short: "Evaluate an enter-path request from a file or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			out, err := evaluateRequest(in)
			if err != nil {
				return err
			}
			if asJSON {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(out)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "result: %d\nfinal position: (%d, %d)\ncommands: %d\nduration: %fs\n",
				out.Result, out.FinalPosition.X, out.FinalPosition.Y, out.Commands, out.Duration)
			return err
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	return cmd
}

func evaluateRequest(r io.Reader) (evaluateOutput, error) {
	var req protocol.RequestEnterPath
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return evaluateOutput{}, fmt.Errorf("%w: %v", ErrMalformedRequest, err)
	}
	commands, err := req.ParseCommands()
	if err != nil {
		return evaluateOutput{}, err
	}

	result, final, elapsed, err := evaluateTimed(req.Start, commands)
	if err != nil {
		return evaluateOutput{}, err
	}
	return evaluateOutput{
		Result:        result,
		FinalPosition: final,
		Commands:      len(commands),
		Duration:      elapsed.Seconds(),
	}, nil
}
