package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/coolbeans/actscan/pkg/diff"
	"github.com/coolbeans/actscan/pkg/markup"
	"github.com/coolbeans/actscan/pkg/render"
	"github.com/coolbeans/actscan/pkg/scan"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "actscan",
		Short: "Legislative act structure extraction and change tracking",
		Long: `Actscan reconstructs the hierarchical structure of a legislative act
from its tagged source markup and tracks article-level changes across
revisions.

It produces:
  - Ordered article records with breadcrumbed hierarchy context
  - A confidence score and quality diagnostics per extraction
  - A canonical annotated document with an anchor-linked index
  - Added/modified/deleted classifications between two versions`,
		Version: version,
	}

	rootCmd.AddCommand(scanCmd())
	rootCmd.AddCommand(renderCmd())
	rootCmd.AddCommand(diffCmd())
	rootCmd.AddCommand(vocabCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadVocabFlag reads the optional vocabulary override, falling back to the
// built-in portal vocabulary.
func loadVocabFlag(path string) (markup.Vocabulary, error) {
	if path == "" {
		return markup.DefaultVocabulary(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening vocabulary: %w", err)
	}
	defer f.Close()
	return markup.LoadVocabulary(f)
}

func scanSource(source, vocabPath string) (*scan.Result, error) {
	raw, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("reading source: %w", err)
	}
	vocab, err := loadVocabFlag(vocabPath)
	if err != nil {
		return nil, err
	}
	return scan.ScanWithVocabulary(string(raw), vocab)
}

func scanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Extract the article records from act markup",
		Long: `Extract the ordered article records from a tagged act markup file.

Example:
  actscan scan --source lege-123.html --stats
  actscan scan --source lege-123.html --json lege-123.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			source, _ := cmd.Flags().GetString("source")
			output, _ := cmd.Flags().GetString("json")
			vocabPath, _ := cmd.Flags().GetString("vocab")
			showStats, _ := cmd.Flags().GetBool("stats")

			if source == "" {
				return fmt.Errorf("--source flag is required")
			}
			res, err := scanSource(source, vocabPath)
			if err != nil {
				return err
			}

			fmt.Printf("Articles: %d  Confidence: %.2f\n", len(res.Articles), res.Confidence)
			for _, article := range res.Articles {
				location := article.Breadcrumb.String()
				if location == "" {
					location = "-"
				}
				fmt.Printf("  %3d  %-18s %s\n", article.Ordinal, article.Title(), location)
			}
			if len(res.Diagnostics) > 0 {
				fmt.Println("Diagnostics:")
				for _, d := range res.Diagnostics {
					fmt.Printf("  [%s] %s\n", d.Code, d.Message)
				}
			}
			if showStats {
				fmt.Printf("Signals: chapters=%t sections=%t avg_body=%.0f type=%q nr=%q\n",
					res.Signals.HasChapters, res.Signals.HasSections,
					res.Signals.AvgBodyLength, res.Signals.ActType, res.Signals.ActNumber)
			}

			if output != "" {
				encoded, err := json.MarshalIndent(res, "", "  ")
				if err != nil {
					return fmt.Errorf("encoding result: %w", err)
				}
				if err := os.WriteFile(output, encoded, 0644); err != nil {
					return fmt.Errorf("writing %s: %w", output, err)
				}
				fmt.Printf("Wrote %s\n", output)
			}
			return nil
		},
	}
	cmd.Flags().String("source", "", "act markup file to scan")
	cmd.Flags().String("json", "", "write the full result as JSON to this file")
	cmd.Flags().String("vocab", "", "YAML marker vocabulary override")
	cmd.Flags().Bool("stats", false, "print the raw confidence signals")
	return cmd
}

func renderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the canonical annotated document",
		Long: `Scan an act markup file and render the structured document: YAML
frontmatter, anchor-linked index, and one annotatable section per article.

Example:
  actscan render --source lege-123.html --metadata lege-123.meta.yaml --output lege-123.md`,
		RunE: func(cmd *cobra.Command, args []string) error {
			source, _ := cmd.Flags().GetString("source")
			metaPath, _ := cmd.Flags().GetString("metadata")
			output, _ := cmd.Flags().GetString("output")
			vocabPath, _ := cmd.Flags().GetString("vocab")

			if source == "" {
				return fmt.Errorf("--source flag is required")
			}
			res, err := scanSource(source, vocabPath)
			if err != nil {
				return err
			}

			var meta render.Metadata
			if metaPath != "" {
				f, err := os.Open(metaPath)
				if err != nil {
					return fmt.Errorf("opening metadata: %w", err)
				}
				meta, err = render.LoadMetadata(f)
				f.Close()
				if err != nil {
					return err
				}
			}

			doc, err := render.New().Render(res, meta)
			if err != nil {
				return err
			}
			if output == "" {
				fmt.Print(doc)
				return nil
			}
			if err := os.WriteFile(output, []byte(doc), 0644); err != nil {
				return fmt.Errorf("writing %s: %w", output, err)
			}
			fmt.Printf("Wrote %s (%d articles, confidence %.2f)\n", output, len(res.Articles), res.Confidence)
			return nil
		},
	}
	cmd.Flags().String("source", "", "act markup file to scan")
	cmd.Flags().String("metadata", "", "YAML act metadata file")
	cmd.Flags().String("output", "", "output file (default: stdout)")
	cmd.Flags().String("vocab", "", "YAML marker vocabulary override")
	return cmd
}

func diffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff",
		Short: "Classify article changes between two versions",
		Long: `Compare two article collections and classify every article as added,
modified, deleted or unchanged. Inputs are JSON files: either a bare array
of {ordinal, label, text} records or a full scan result.

Example:
  actscan diff --old lege-123-v1.json --new lege-123-v2.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			oldPath, _ := cmd.Flags().GetString("old")
			newPath, _ := cmd.Flags().GetString("new")
			threshold, _ := cmd.Flags().GetFloat64("threshold")
			output, _ := cmd.Flags().GetString("json")

			if oldPath == "" || newPath == "" {
				return fmt.Errorf("--old and --new flags are required")
			}
			oldArticles, err := loadArticles(oldPath)
			if err != nil {
				return err
			}
			newArticles, err := loadArticles(newPath)
			if err != nil {
				return err
			}

			report := diff.Compare(oldArticles, newArticles, &diff.Options{Threshold: threshold})
			s := report.Summary
			fmt.Printf("Added: %d  Modified: %d  Deleted: %d  Unchanged: %d\n",
				s.Added, s.Modified, s.Deleted, s.Unchanged)
			fmt.Printf("Needs relabeling: %d\n", s.NeedsRelabeling())

			if output != "" {
				encoded, err := json.MarshalIndent(report, "", "  ")
				if err != nil {
					return fmt.Errorf("encoding report: %w", err)
				}
				if err := os.WriteFile(output, encoded, 0644); err != nil {
					return fmt.Errorf("writing %s: %w", output, err)
				}
				fmt.Printf("Wrote %s\n", output)
			}
			return nil
		},
	}
	cmd.Flags().String("old", "", "previous version article collection (JSON)")
	cmd.Flags().String("new", "", "new version article collection (JSON)")
	cmd.Flags().Float64("threshold", diff.DefaultThreshold, "similarity threshold below which a match is modified")
	cmd.Flags().String("json", "", "write the full report as JSON to this file")
	return cmd
}

// loadArticles accepts either a bare JSON array of article versions or a
// full scan result dump, so "scan --json" output feeds "diff" directly.
func loadArticles(path string) ([]diff.ArticleVersion, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		var articles []diff.ArticleVersion
		if err := json.Unmarshal(data, &articles); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", path, err)
		}
		return articles, nil
	}
	var res scan.Result
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	articles := make([]diff.ArticleVersion, 0, len(res.Articles))
	for _, article := range res.Articles {
		articles = append(articles, diff.ArticleVersion{
			Ordinal: article.Ordinal,
			Label:   article.Label,
			Text:    article.Text,
		})
	}
	return articles, nil
}

func vocabCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vocab",
		Short: "Export the built-in marker vocabulary",
		Long: `Write the built-in tag-class vocabulary as YAML, ready for editing and
reuse with the --vocab flag of scan and render.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Flags().GetString("output")
			encoded, err := yaml.Marshal(markup.DefaultVocabulary())
			if err != nil {
				return fmt.Errorf("encoding vocabulary: %w", err)
			}
			if output == "" {
				fmt.Print(string(encoded))
				return nil
			}
			if err := os.WriteFile(output, encoded, 0644); err != nil {
				return fmt.Errorf("writing %s: %w", output, err)
			}
			fmt.Printf("Wrote %s\n", output)
			return nil
		},
	}
	cmd.Flags().String("output", "", "output file (default: stdout)")
	return cmd
}
