package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/meshlog/internal/parse"
	"github.com/Zuo-Peng/meshlog/internal/scan"
)

func classifyCmd() *cobra.Command {
	var pattern string

	cmd := &cobra.Command{
		Use:   "classify <paths...>",
		Short: "Print the detected log kind of each file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := scan.Expand(args, pattern)
			if err != nil {
				return err
			}
			for _, f := range files {
				fmt.Printf("%-12s %s\n", parse.ClassifyFile(f), f)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&pattern, "pattern", scan.DefaultPattern, "File name pattern for directory inputs")

	return cmd
}
