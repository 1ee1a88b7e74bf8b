package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/HankG/Bag/scanner"
	"github.com/HankG/Bag/token"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens file.xml",
	Short: "Dump the token stream of an XML file",
	Long:  `Tokens breaks an XML file down into its constituent tokens, one per line with position information.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokens,
}

var typeColors = map[token.Type]*color.Color{
	scanner.Ident:   color.New(color.FgCyan),
	scanner.Literal: color.New(color.FgGreen),
	scanner.Comment: color.New(color.FgHiBlack),
	scanner.Err:     color.New(color.FgRed, color.Bold),
}

func runTokens(cmd *cobra.Command, args []string) error {
	src, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	color.NoColor = !useColor(cmd, os.Stdout)

	f := token.NewFile(args[0], src)
	s := scanner.New(f)
	for {
		it := s.Scan()
		line := fmt.Sprintf("%s: %s", f.Position(it.Pos), &it)
		if c, ok := typeColors[it.Type()]; ok {
			c.Println(line)
		} else {
			fmt.Println(line)
		}
		if it.Type() == scanner.EOF {
			return nil
		}
	}
}
