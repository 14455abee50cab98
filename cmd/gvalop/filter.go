package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/zephyrtronium/gvalop"
)

var filterFlags struct {
	invert bool
	count  bool
}

var filterCmd = &cobra.Command{
	Use:   "filter EXPR [FILE...]",
	Short: "Print lines matching a logic expression",
	Long: `Print each input line for which EXPR is true. A value in EXPR is true
when it appears in the line, ignoring case. Lines are read from the named files,
or from stdin if there are none or a file is "-".`,
	Example: `  gvalop filter 'marley && (stephen && !(ziggy || damian) || bob)' songs.txt`,
	Args:    cobra.MinimumNArgs(1),
	RunE:    runFilter,
}

func init() {
	filterCmd.Flags().BoolVarP(&filterFlags.invert, "invert", "v", false, "print lines that do not match")
	filterCmd.Flags().BoolVar(&filterFlags.count, "count", false, "print only the number of matching lines")
	rootCmd.AddCommand(filterCmd)
}

func runFilter(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	r, err := cfg.LogicRegistry()
	if err != nil {
		return err
	}
	g, err := r.Parse(args[0], cfg.ParseOptions()...)
	if err != nil {
		return fmt.Errorf("invalid expression: %w", err)
	}

	out := cmd.OutOrStdout()
	n := 0
	filter := func(in io.Reader) error {
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			line := sc.Text()
			res, err := g.Evaluate(gvalop.ContainsFold(line))
			if err != nil {
				return fmt.Errorf("invalid expression: %w", err)
			}
			if res.Value == filterFlags.invert {
				continue
			}
			n++
			if !filterFlags.count {
				fmt.Fprintln(out, line)
			}
		}
		return sc.Err()
	}

	files := args[1:]
	if len(files) == 0 {
		files = []string{"-"}
	}
	for _, name := range files {
		if name == "-" {
			err = filter(cmd.InOrStdin())
		} else {
			err = filterFile(name, filter)
		}
		if err != nil {
			return err
		}
	}
	if filterFlags.count {
		fmt.Fprintln(out, n)
	}
	return nil
}

func filterFile(name string, filter func(io.Reader) error) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := filter(f); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}
