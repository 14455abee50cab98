package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zephyrtronium/gvalop"
	"github.com/zephyrtronium/gvalop/internal/config"
)

var calcFlags struct {
	prec  uint
	verb  string
	echo  bool
	lines bool
}

var calcCmd = &cobra.Command{
	Use:   "calc [EXPR...]",
	Short: "Evaluate arithmetic expressions",
	Long: `Evaluate each EXPR as arithmetic with arbitrary precision. With no
arguments, stdin is one expression, or one per line with -n.

Operators apply strictly left to right: "1 + 2 * 3" is 9. The default operators
are + - * × / ÷ ^ as binary operators and ~ (negation), sqrt, exp, and ln as
unary operators. Values are decimal numbers, inf or ∞, pi or π, and e.`,
	Example: `  gvalop calc '1 + (2 * 3)'
  gvalop calc -p 256 --fmt '%.60f' 'sqrt 2'
  printf '1 + 1\n2 ^ 0.5\n' | gvalop calc -n`,
	RunE: runCalc,
}

func init() {
	calcCmd.Flags().UintVarP(&calcFlags.prec, "prec", "p", 0, "precision of calculations in bits (default from config)")
	calcCmd.Flags().StringVar(&calcFlags.verb, "fmt", "%g", "result formatting string")
	calcCmd.Flags().BoolVar(&calcFlags.echo, "echo", false, "print parse trees")
	calcCmd.Flags().BoolVarP(&calcFlags.lines, "lines", "n", false, "parse separate input lines as separate expressions")
	rootCmd.AddCommand(calcCmd)
}

func runCalc(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if calcFlags.prec != 0 {
		cfg.Arith.Prec = calcFlags.prec
		if err := config.Validate(cfg); err != nil {
			return err
		}
	}
	r, err := cfg.ArithRegistry()
	if err != nil {
		return err
	}

	exprs := args
	if len(exprs) == 0 {
		exprs, err = readExprs(cmd.InOrStdin(), calcFlags.lines)
		if err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	opts := cfg.ParseOptions()
	num := gvalop.Number(cfg.Arith.Prec)
	verb := calcFlags.verb + "\n"
	failed := 0
	for _, src := range exprs {
		g, err := r.Parse(src, opts...)
		if err != nil {
			fmt.Fprintln(out, err)
			failed++
			continue
		}
		if calcFlags.echo {
			fmt.Fprintf(out, "%v : ", g)
		}
		res, err := g.EvaluateFunc(num)
		if err != nil {
			fmt.Fprintln(out, err)
			failed++
			continue
		}
		fmt.Fprintf(out, verb, res.Value)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d expressions failed", failed, len(exprs))
	}
	return nil
}

// readExprs reads expressions from in, either the whole input as one or each
// non-blank line separately.
func readExprs(in io.Reader, lines bool) ([]string, error) {
	if !lines {
		b, err := io.ReadAll(in)
		if err != nil {
			return nil, err
		}
		return []string{string(b)}, nil
	}
	var exprs []string
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) != "" {
			exprs = append(exprs, sc.Text())
		}
	}
	return exprs, sc.Err()
}
