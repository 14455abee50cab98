package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/zephyrtronium/gvalop"
)

var treeFlags struct {
	mode   string
	values bool
}

var treeCmd = &cobra.Command{
	Use:   "tree EXPR",
	Short: "Print the parse tree of an expression",
	Long: `Print EXPR with every operator application bracketed, showing exactly how
it groups. Groupings from the input are kept as written.`,
	Example: `  gvalop tree 'a && b || !c'
  gvalop tree --mode arith '1 + 2 * sqrt 3'`,
	Args: cobra.ExactArgs(1),
	RunE: runTree,
}

func init() {
	treeCmd.Flags().StringVar(&treeFlags.mode, "mode", "logic", "operator set (logic, arith)")
	treeCmd.Flags().BoolVar(&treeFlags.values, "values", false, "also print the values, one per line")
	rootCmd.AddCommand(treeCmd)
}

func runTree(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	switch treeFlags.mode {
	case "logic":
		r, err := cfg.LogicRegistry()
		if err != nil {
			return err
		}
		return printTree(out, r, args[0], cfg.ParseOptions())
	case "arith":
		r, err := cfg.ArithRegistry()
		if err != nil {
			return err
		}
		return printTree(out, r, args[0], cfg.ParseOptions())
	default:
		return fmt.Errorf("unknown mode %q (want logic or arith)", treeFlags.mode)
	}
}

func printTree[T any](out io.Writer, r *gvalop.Registry[T], src string, opts []gvalop.ParseOption) error {
	g, err := r.Parse(src, opts...)
	if err != nil {
		return fmt.Errorf("invalid expression: %w", err)
	}
	fmt.Fprintln(out, g)
	if treeFlags.values {
		for _, v := range g.Values() {
			fmt.Fprintln(out, v)
		}
	}
	return nil
}
