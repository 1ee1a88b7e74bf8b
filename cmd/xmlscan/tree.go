package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/HankG/Bag/parser"
	"github.com/HankG/Bag/token"
)

var treeCmd = &cobra.Command{
	Use:   "tree file.xml",
	Short: "Parse an XML file and print its element tree",
	Args:  cobra.ExactArgs(1),
	RunE:  runTree,
}

func runTree(cmd *cobra.Command, args []string) error {
	src, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	color.NoColor = !useColor(cmd, os.Stdout)

	root, err := parser.Parse(token.NewFile(args[0], src))
	if err != nil {
		return err
	}
	printElement(os.Stdout, root, 0)
	return nil
}

func printElement(w io.Writer, e *parser.Element, depth int) {
	fmt.Fprintf(w, "%s%s", strings.Repeat("  ", depth), color.CyanString("%s", e.Name))
	for _, a := range e.Attrs {
		fmt.Fprintf(w, " %s=%s", a.Name, color.GreenString("%q", a.Value))
	}
	if e.Text != "" {
		fmt.Fprintf(w, " %q", e.Text)
	}
	fmt.Fprintln(w)
	for _, c := range e.Children {
		printElement(w, c, depth+1)
	}
}
