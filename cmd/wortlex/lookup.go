package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/ZaguanLabs/wortlex"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func (c *cli) newLookupCommand() *cobra.Command {
	var (
		dir        string
		ui         string
		morpho     bool
		family     bool
		noExamples bool
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "lookup WORD",
		Short: "Look up a word",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			direction, err := wortlex.ParseDirection(dir)
			if err != nil {
				return err
			}

			a, err := c.load()
			if err != nil {
				return err
			}
			defer a.Close()

			opts := wortlex.DefaultLookupOptions()
			opts.UILanguage = a.cfg.Dictionary.UILanguage
			if ui != "" {
				opts.UILanguage = ui
			}
			opts.EnableMorphology = morpho
			opts.FamilyFilter = family
			opts.EnableExamples = !noExamples

			res, err := a.dict.Query(cmd.Context(), wortlex.LookupQuery{
				Text:      strings.Join(args, " "),
				Direction: direction,
				Options:   opts,
			})
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(c.stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			printResult(c.stdout, res)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&dir, "dir", "d", string(wortlex.DirectionDeRu), "Direction, e.g. de-ru, ru-de, de-en")
	flags.StringVar(&ui, "ui", "", "Interface language for labels (default from config)")
	flags.BoolVar(&morpho, "morpho", false, "Search by word forms")
	flags.BoolVar(&family, "family", false, "Filter out non-family-friendly results")
	flags.BoolVar(&noExamples, "no-examples", false, "Omit usage examples")
	flags.BoolVar(&asJSON, "json", false, "Print the result as JSON")
	return cmd
}

func (c *cli) newLangsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "langs",
		Short: "List the language pairs the provider supports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.load()
			if err != nil {
				return err
			}
			defer a.Close()

			langs, err := a.dict.SupportedLanguages(cmd.Context())
			if err != nil {
				return err
			}
			for _, l := range langs {
				fmt.Fprintln(c.stdout, l)
			}
			return nil
		},
	}
}

var (
	headStyle   = color.New(color.Bold)
	dimStyle    = color.New(color.Faint)
	nounStyle   = color.New(color.FgCyan, color.Bold)
	sourceStyle = color.New(color.FgYellow)
)

// printResult renders a result for the terminal.
func printResult(w io.Writer, res *wortlex.LookupResult) {
	if !res.HasResults {
		fmt.Fprintf(w, "No results for %q (%s)\n", res.Word, wortlex.DescribeDirection(res.Direction))
		return
	}

	for i, def := range res.Definitions {
		if i > 0 {
			fmt.Fprintln(w)
		}

		headword := def.Word
		if i == 0 && res.GermanArticle != nil {
			headword = nounStyle.Sprint(res.GermanArticle.Article) + " " + headword
		}
		line := headStyle.Sprint(headword)
		if def.Transcription != "" {
			line += " [" + def.Transcription + "]"
		}
		if def.PartOfSpeech != "" {
			line += " " + dimStyle.Sprint(def.PartOfSpeech)
		}
		fmt.Fprintln(w, line)

		for j, tr := range def.Translations {
			label := tr.Text
			if tr.Gender != "" {
				label += " " + dimStyle.Sprint(tr.Gender)
			}
			fmt.Fprintf(w, "  %d. %s\n", j+1, label)
			if len(tr.Synonyms) > 0 {
				fmt.Fprintf(w, "     syn: %s\n", strings.Join(tr.Synonyms, ", "))
			}
			if len(tr.Meanings) > 0 {
				fmt.Fprintf(w, "     mean: %s\n", strings.Join(tr.Meanings, ", "))
			}
			for _, ex := range tr.Examples {
				if ex.Translation != "" {
					fmt.Fprintf(w, "     ex: %s → %s\n", ex.Original, ex.Translation)
				} else {
					fmt.Fprintf(w, "     ex: %s\n", ex.Original)
				}
			}
		}
	}

	if res.Source != "" {
		fmt.Fprintln(w, sourceStyle.Sprintf("(%s)", res.Source))
	}
}
