package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ByLCY/pinned/pin"
)

// resolveFlags 与 pin.Fields 的字段一一对应。
var resolveFlags = []struct {
	name  string
	usage string
	field func(*pin.Fields) **float64
}{
	{"start", "absolute start inset", func(f *pin.Fields) **float64 { return &f.Start }},
	{"start-fraction", "start inset as a fraction of the length", func(f *pin.Fields) **float64 { return &f.StartFraction }},
	{"end", "absolute end inset", func(f *pin.Fields) **float64 { return &f.End }},
	{"end-fraction", "end inset as a fraction of the length", func(f *pin.Fields) **float64 { return &f.EndFraction }},
	{"size", "fixed size", func(f *pin.Fields) **float64 { return &f.Size }},
	{"middle", "position in the leftover space, 0..1", func(f *pin.Fields) **float64 { return &f.Middle }},
}

func newResolveCmd() *cobra.Command {
	var (
		length float64
		asJSON bool
	)
	values := make([]float64, len(resolveFlags))
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve one axis of a pin against a parent length",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var fields pin.Fields
			for i, rf := range resolveFlags {
				if cmd.Flags().Changed(rf.name) {
					*rf.field(&fields) = pin.Float(values[i])
				}
			}
			p, err := pin.New(fields)
			if err != nil {
				return err
			}
			span := pin.Resolve(p, length)

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(struct {
					Pin  pin.Fields `json:"pin"`
					Span pin.Span   `json:"span"`
					Size float64    `json:"size"`
				}{p.Fields(), span, span.Size()})
			}
			fmt.Fprintln(out, p)
			fmt.Fprintf(out, "start=%g end=%g size=%g\n", span.Start, span.End, span.Size())
			return nil
		},
	}
	cmd.Flags().Float64VarP(&length, "length", "l", 0, "parent length on this axis")
	for i, rf := range resolveFlags {
		cmd.Flags().Float64Var(&values[i], rf.name, 0, rf.usage)
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of text")
	_ = cmd.MarkFlagRequired("length")
	return cmd
}
