package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"aspiro/internal/client"

	"github.com/spf13/cobra"
)

func newExtractCmd(root *rootOptions) *cobra.Command {
	var inputFile string

	cmd := &cobra.Command{
		Use:   "extract [text...]",
		Short: "Extract skills from text",
		Long:  "Extract skills from the given text. Text is taken from the arguments, from --file, or from stdin when neither is given.",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd, args, inputFile)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if strings.TrimSpace(text) == "" {
				fmt.Fprintln(out, client.MessageEmptyInput)
				return nil
			}

			c, err := root.client()
			if err != nil {
				return err
			}
			skills, err := c.ExtractSkills(cmd.Context(), text)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, client.RenderSkills(skills))
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputFile, "file", "f", "", "Read text from file ('-' for stdin)")
	return cmd
}

func readInput(cmd *cobra.Command, args []string, path string) (string, error) {
	if len(args) > 0 && path != "" {
		return "", fmt.Errorf("cannot combine text arguments with --file")
	}
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}

	switch path {
	case "":
		if f, ok := cmd.InOrStdin().(*os.File); ok {
			if fi, err := f.Stat(); err == nil && fi.Mode()&os.ModeCharDevice != 0 {
				return "", nil
			}
		}
		return readAll(cmd.InOrStdin())
	case "-":
		return readAll(cmd.InOrStdin())
	default:
		b, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read input file: %w", err)
		}
		return string(b), nil
	}
}

func readAll(r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(b), nil
}
