package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ByLCY/pinned/design"
)

func newDesignCmd() *cobra.Command {
	var (
		input         string
		width, height float64
	)
	cmd := &cobra.Command{
		Use:   "design",
		Short: "Derive pins from a design tool export and resolve them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(input)
			if err != nil {
				return fmt.Errorf("无法打开导出文件 %s: %w", input, err)
			}
			defer f.Close()

			export, err := design.Load(f)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("width") {
				width = export.Parent.Width
			}
			if !cmd.Flags().Changed("height") {
				height = export.Parent.Height
			}

			out := cmd.OutOrStdout()
			placed := export.Resolve(width, height)
			for i, np := range export.Pins() {
				h, v := placed[i].Horizontal, placed[i].Vertical
				fmt.Fprintf(out, "%s\n  horizontal: %v\n  vertical:   %v\n", np.Name, np.Horizontal, np.Vertical)
				fmt.Fprintf(out, "  rect @ %gx%g: x=%g y=%g w=%g h=%g\n",
					width, height, h.Start, v.Start, h.Size(), v.Size())
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&input, "in", "i", "", "design export YAML file")
	cmd.Flags().Float64Var(&width, "width", 0, "new parent width (default: the export's parent width)")
	cmd.Flags().Float64Var(&height, "height", 0, "new parent height (default: the export's parent height)")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}
