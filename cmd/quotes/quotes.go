package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/nikbrunner/quotes/internal/display"
	"github.com/nikbrunner/quotes/internal/model"
	"github.com/nikbrunner/quotes/internal/picker"
	"github.com/nikbrunner/quotes/internal/search"
)

var (
	showCategory string
	showHTML     bool
	listCategory string
	pickFlag     bool
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print a random quote, or the first quote of a category",
	Args:  cobra.NoArgs,
	RunE:  runShow,
}

var addCmd = &cobra.Command{
	Use:   "add <text> <category>",
	Short: "Add a quote",
	Args:  cobra.ExactArgs(2),
	RunE:  runAdd,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List quotes",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the category index",
	Args:  cobra.NoArgs,
	RunE:  runCategories,
}

var filterCmd = &cobra.Command{
	Use:   "filter [category]",
	Short: "Show or set the saved category filter",
	Long: `Without arguments, print the saved filter selection.
With a category, save it as the filter used by show and the viewer.
Use "all" to clear the filter.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFilter,
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Fuzzy search quote text",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

func init() {
	showCmd.Flags().StringVarP(&showCategory, "category", "c", "", "Category to show (default: saved filter)")
	showCmd.Flags().BoolVar(&showHTML, "html", false, "Print the quote as an HTML fragment")
	listCmd.Flags().StringVarP(&listCategory, "category", "c", model.AllCategories, "Only list this category")
	searchCmd.Flags().BoolVar(&pickFlag, "pick", false, "Choose a result interactively")
}

func runShow(cmd *cobra.Command, args []string) error {
	s, kv, err := openStore()
	if err != nil {
		return err
	}
	defer kv.Close()

	selection := showCategory
	if selection == "" {
		if selection, err = s.Filter(); err != nil {
			return err
		}
	}

	q, ok := display.Pick(s.All(), selection, nil)
	if !ok {
		fmt.Fprintf(cmd.OutOrStdout(), "No quotes in %q.\n", selection)
		return nil
	}
	if err := s.SetLastViewed(q); err != nil {
		return err
	}

	if showHTML {
		fragment, err := display.HTML(q)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), fragment)
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), display.Text(q))
	return nil
}

func runAdd(cmd *cobra.Command, args []string) error {
	s, kv, err := openStore()
	if err != nil {
		return err
	}
	defer kv.Close()

	q, err := s.Add(args[0], args[1])
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", display.Text(q))
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	s, kv, err := openStore()
	if err != nil {
		return err
	}
	defer kv.Close()

	selection := listCategory
	if selection == "" {
		selection = model.AllCategories
	}
	for _, q := range model.Filter(s.All(), selection) {
		fmt.Fprintln(cmd.OutOrStdout(), display.Text(q))
	}
	return nil
}

func runCategories(cmd *cobra.Command, args []string) error {
	s, kv, err := openStore()
	if err != nil {
		return err
	}
	defer kv.Close()

	for _, c := range s.Categories() {
		fmt.Fprintln(cmd.OutOrStdout(), c)
	}
	return nil
}

func runFilter(cmd *cobra.Command, args []string) error {
	s, kv, err := openStore()
	if err != nil {
		return err
	}
	defer kv.Close()

	if len(args) == 0 {
		selection, err := s.Filter()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), selection)
		return nil
	}

	if err := s.SetFilter(args[0]); err != nil {
		return err
	}
	logger.Debug("filter saved")
	fmt.Fprintf(cmd.OutOrStdout(), "Filter set to %s\n", args[0])
	return nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	s, kv, err := openStore()
	if err != nil {
		return err
	}
	defer kv.Close()

	query := strings.Join(args, " ")
	results := search.FuzzySearch(s.All(), query)
	if len(results) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No quotes match %q.\n", query)
		return nil
	}

	if !pickFlag {
		for _, r := range results {
			fmt.Fprintln(cmd.OutOrStdout(), display.Text(r.Quote))
		}
		return nil
	}

	final, err := tea.NewProgram(picker.New(results, query), tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}
	q, ok := final.(picker.Picker).Selected()
	if !ok {
		return nil
	}
	if err := s.SetLastViewed(q); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), display.Text(q))
	return nil
}
