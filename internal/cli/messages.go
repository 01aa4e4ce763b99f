package cli

import (
	"fmt"
	"io"
	"sort"

	"bloomlet/internal/core/catalog"
	"bloomlet/internal/core/model"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
)

var categoryColors = map[model.Category]*color.Color{
	model.CategoryComforting:   color.New(color.FgMagenta),
	model.CategoryMotivational: color.New(color.FgYellow),
	model.CategoryMindfulness:  color.New(color.FgCyan),
}

var bold = color.New(color.Bold).SprintFunc()

func addMessages(topLevel *cobra.Command, opts *options) {
	var category string
	cmd := &cobra.Command{
		Use:   "messages",
		Short: "List the messages in the catalog.",
		Example: `
bloomlet messages
bloomlet messages --category mindfulness
bloomlet messages --catalog ~/my-messages.yaml
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printMessages(cmd.OutOrStdout(), opts.loadCatalog(), model.Category(category))
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "only list messages of this category")

	topLevel.AddCommand(cmd)
}

func printMessages(out io.Writer, messages *catalog.Catalog, category model.Category) error {
	listed := messages.Filter(func(message model.Message) bool {
		return category == "" || message.Category == category
	})

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 72
	tbl.Wrap = true
	tbl.AddRow(bold("#"), bold("Category"), bold("Message"))
	for index, message := range listed {
		tbl.AddRow(index+1, colorCategory(message.Category), message.Text)
	}
	if _, err := fmt.Fprintln(out, tbl); err != nil {
		return err
	}

	counts := messages.CountByCategory()
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, string(name))
	}
	sort.Strings(names)

	summary := uitable.New()
	summary.Separator = "  "
	for _, name := range names {
		summary.AddRow(colorCategory(model.Category(name)), counts[model.Category(name)])
	}
	summary.AddRow(bold("total"), messages.Len())
	_, err := fmt.Fprintf(out, "\n%s\n", summary)
	return err
}

func colorCategory(category model.Category) string {
	if paint, ok := categoryColors[category]; ok {
		return paint.Sprint(string(category))
	}
	return string(category)
}
