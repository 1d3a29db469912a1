package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"golang.org/x/term"
)

const diffStyle = "catppuccin-mocha"

func init() {
	// Catppuccin Mocha, reduced to the tokens a diff produces
	styles.Register(chroma.MustNewStyle(diffStyle, chroma.StyleEntries{
		chroma.Text:              "#cdd6f4",
		chroma.GenericDeleted:    "#f38ba8",
		chroma.GenericInserted:   "#a6e3a1",
		chroma.GenericHeading:    "#89b4fa bold",
		chroma.GenericSubheading: "#a6adc8 bold",
		chroma.GenericStrong:     "bold",
		chroma.Background:        "", // Transparent background
	}))
}

// Color modes of the --color flag.
const (
	colorAuto   = "auto"
	colorAlways = "always"
	colorNever  = "never"
)

// useColor reports whether output to w should be colorized.
func useColor(w io.Writer, mode string) (bool, error) {
	switch mode {
	case colorAlways:
		return true, nil
	case colorNever:
		return false, nil
	case colorAuto, "":
		f, ok := w.(*os.File)
		return ok && term.IsTerminal(int(f.Fd())), nil
	default:
		return false, fmt.Errorf("invalid --color value %q (want auto, always or never)", mode)
	}
}

// writeDiff writes a unified diff, highlighted when color is set.
func writeDiff(w io.Writer, diff string, color bool) error {
	if !color {
		_, err := io.WriteString(w, diff)
		return err
	}

	lexer := lexers.Get("diff")
	if lexer == nil {
		lexer = lexers.Fallback
	}
	iterator, err := lexer.Tokenise(nil, diff)
	if err != nil {
		return fmt.Errorf("highlight diff: %w", err)
	}
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}
	return formatter.Format(w, styles.Get(diffStyle), iterator)
}
