// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/scholar-site/internal/catalog"
	"github.com/pdiddy/scholar-site/internal/wordcloud"
)

var wordcloudCmd = &cobra.Command{
	Use:   "wordcloud",
	Short: "Compute word-cloud frequencies from publication titles",
	Long: `Wordcloud counts the words of the cached publication titles, drops
stopwords and numbers, and assigns each of the top words a font size and a
colour from the chosen template. Layout is left to the renderer.

Templates: ` + strings.Join(wordcloud.TemplateNames(), ", ") + `.`,
	RunE: runWordcloud,
}

func runWordcloud(cmd *cobra.Command, args []string) error {
	opts := wordcloud.OptionsFromConfig(siteCfg.WordCloud)
	opts.Area, _ = cmd.Flags().GetString("area")
	if cmd.Flags().Changed("max") {
		opts.MaxWords, _ = cmd.Flags().GetInt("max")
	}
	if t, _ := cmd.Flags().GetString("template"); t != "" {
		opts.Template = t
	}
	profile, _ := cmd.Flags().GetString("profile")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	a, err := newApp(cmd.Context(), siteCfg, diag)
	if err != nil {
		return err
	}
	defer a.Close()

	pubs, _, err := a.viewPublications(cmd.Context(), profile)
	if err != nil {
		return err
	}
	cloud, err := wordcloud.Generate(pubs, opts)
	if err != nil {
		return err
	}

	if jsonOutput {
		return catalog.FormatJSON(cloud, cmd.OutOrStdout())
	}
	formatCloud(cloud, cmd.OutOrStdout())
	return nil
}

func formatCloud(c wordcloud.Cloud, w io.Writer) {
	if len(c.Words) == 0 {
		fmt.Fprintln(w, "No words.")
		return
	}
	fmt.Fprintf(w, "%-24s  %5s  %4s  %s\n", "Word", "Count", "Size", "Color")
	fmt.Fprintln(w, strings.Repeat("-", 60))
	for _, word := range c.Words {
		fmt.Fprintf(w, "%-24s  %5d  %4.1f  %s\n", word.Text, word.Count, word.FontSize, word.Color)
	}
}

func init() {
	wordcloudCmd.Flags().String("area", catalog.AllAreas, "research area to include")
	wordcloudCmd.Flags().Int("max", 0, "maximum number of words (default: wordcloud.max_words)")
	wordcloudCmd.Flags().String("template", "", "colour template (default: wordcloud.template)")
	wordcloudCmd.Flags().String("profile", "", "taxonomy profile for the area filter (default: classify.view_profile)")
	wordcloudCmd.Flags().Bool("json", false, "output the cloud as JSON")

	rootCmd.AddCommand(wordcloudCmd)
}
