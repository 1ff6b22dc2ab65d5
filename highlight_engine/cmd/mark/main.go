package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"wordmark/highlight_engine"
)

var (
	wordsFile string
	outFile   string
	class     string
)

var rootCmd = &cobra.Command{
	Use:   "mark [page.html]",
	Short: "Highlight words from a word list in a local HTML file",
	Long: `Reads an HTML page (a file, or stdin when omitted) and a JSON word list
in the lookup API format ([{"word": "..."}]) and writes the page with
matching words highlighted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMark,
}

func init() {
	rootCmd.Flags().StringVarP(&wordsFile, "words", "w", "", "JSON word list file (required)")
	rootCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")
	rootCmd.Flags().StringVar(&class, "class", highlight_engine.DefaultClass, "class for highlight markers")
	_ = rootCmd.MarkFlagRequired("words")
}

func readPhrases(path string) ([]highlight_engine.Phrase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read word list")
	}
	var phrases []highlight_engine.Phrase
	if err := json.Unmarshal(data, &phrases); err != nil {
		return nil, errors.Wrapf(err, "failed to parse word list %s", path)
	}
	return phrases, nil
}

func runMark(cmd *cobra.Command, args []string) error {
	phrases, err := readPhrases(wordsFile)
	if err != nil {
		return err
	}

	var page []byte
	if len(args) == 1 {
		page, err = os.ReadFile(args[0])
	} else {
		page, err = io.ReadAll(cmd.InOrStdin())
	}
	if err != nil {
		return errors.Wrap(err, "failed to read page")
	}

	engine := highlight_engine.NewEngine(highlight_engine.WithClass(class))
	res := engine.Mark(string(page), phrases, nil)

	out := cmd.OutOrStdout()
	if outFile != "" {
		f, err := os.Create(outFile)
		if err != nil {
			return errors.Wrap(err, "failed to create output file")
		}
		defer f.Close()
		out = f
	}
	if _, err := io.WriteString(out, res.HTML); err != nil {
		return errors.Wrap(err, "failed to write output")
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "%d words, %d highlights, %d spans\n", len(phrases), res.Highlights, res.Spans)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
