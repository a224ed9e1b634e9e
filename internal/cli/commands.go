package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/tada/internal/controller"
	"github.com/idilsaglam/tada/internal/filter"
	"github.com/idilsaglam/tada/internal/render"
	"github.com/idilsaglam/tada/internal/store"
	"github.com/idilsaglam/tada/internal/ui"
)

const shortIDLen = 8

func addCmd(opt *Options) *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "add <title...>",
		Short: "Add a new item (title can be multiple words)",
		Args:  usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(opt)
			if err != nil {
				return err
			}
			defer s.close()

			view := &capture{}
			ctl := s.controller(view, newLineDialogs(cmd.InOrStdin(), cmd.OutOrStdout()))
			if err := ctl.Dispatch(controller.Submit{Text: strings.Join(args, " "), Category: category}); err != nil {
				return err
			}
			if view.message.Kind == controller.KindError {
				return usageErr("add: %s", view.message.Text)
			}
			ui.OK(fmt.Sprintf("added %s", shortID(s.store.Items()[0].ID)))
			return nil
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "category (default: first configured)")
	return cmd
}

func lsCmd(opt *Options) *cobra.Command {
	var search, category string
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List items",
		Args:    usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, opt, search, category)
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "only items containing this text")
	cmd.Flags().StringVarP(&category, "category", "c", filter.All, "only items in this category")
	return cmd
}

func runList(cmd *cobra.Command, opt *Options, search, category string) error {
	s, err := openSession(opt)
	if err != nil {
		return err
	}
	defer s.close()

	view := &capture{}
	ctl := s.controller(view, newLineDialogs(cmd.InOrStdin(), cmd.OutOrStdout()))
	ctl.Refresh()
	if search != "" {
		if err := ctl.Dispatch(controller.SearchChanged{Text: search}); err != nil {
			return err
		}
	}
	if category != "" && category != filter.All {
		if err := ctl.Dispatch(controller.CategoryChanged{Value: category}); err != nil {
			return err
		}
	}
	ui.Panel(listLines(view.display, ctl.Categories(), filter.Counts(s.store.Items())))
	return nil
}

func editCmd(opt *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <id> [title...]",
		Short: "Change an item's title (prompts when no title is given)",
		Args:  usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(opt)
			if err != nil {
				return err
			}
			defer s.close()

			id, err := resolveID(s.store, args[0])
			if err != nil {
				return err
			}
			if id == "" {
				ui.OK(fmt.Sprintf("no item matches %q", args[0]))
				return nil
			}

			dialogs := newLineDialogs(cmd.InOrStdin(), cmd.OutOrStdout())
			if len(args) > 1 {
				title := strings.Join(args[1:], " ")
				dialogs.answer = &title
			}
			view := &capture{}
			if err := s.controller(view, dialogs).Dispatch(controller.Edit{ID: id}); err != nil {
				return err
			}
			switch {
			case len(dialogs.alerts) > 0:
				return usageErr("edit: %s", dialogs.alerts[0])
			case view.draws == 0:
				ui.OK("edit cancelled")
			default:
				ui.OK("updated " + shortID(id))
			}
			return nil
		},
	}
}

func rmCmd(opt *Options) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Remove an item",
		Args:    usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(opt)
			if err != nil {
				return err
			}
			defer s.close()

			id, err := resolveID(s.store, args[0])
			if err != nil {
				return err
			}
			if id == "" {
				ui.OK(fmt.Sprintf("no item matches %q", args[0]))
				return nil
			}
			view := &capture{}
			ctl := s.controller(view, newLineDialogs(cmd.InOrStdin(), cmd.OutOrStdout()))
			if err := ctl.Dispatch(controller.Delete{ID: id}); err != nil {
				return err
			}
			ui.OK("removed " + shortID(id))
			return nil
		},
	}
}

func clearCmd(opt *Options) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove all items",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(opt)
			if err != nil {
				return err
			}
			defer s.close()

			dialogs := newLineDialogs(cmd.InOrStdin(), cmd.OutOrStdout())
			dialogs.assumeYes = yes
			view := &capture{}
			if err := s.controller(view, dialogs).Dispatch(controller.ClearAll{}); err != nil {
				return err
			}
			if view.draws == 0 {
				ui.OK("kept all items")
				return nil
			}
			ui.OK("cleared")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

// resolveID accepts a full id or any unique prefix of one. It returns ""
// when nothing matches. A blank argument is a usage error.
func resolveID(s *store.Store, arg string) (string, error) {
	if strings.TrimSpace(arg) == "" {
		return "", usageErr("empty id")
	}
	if _, ok := s.Get(arg); ok {
		return arg, nil
	}
	var matches []string
	for _, it := range s.Items() {
		if strings.HasPrefix(it.ID, arg) {
			matches = append(matches, it.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", nil
	case 1:
		return matches[0], nil
	}
	return "", usageErr("id prefix %q is ambiguous (%d matches)", arg, len(matches))
}

func shortID(id string) string {
	if len(id) > shortIDLen {
		return id[:shortIDLen]
	}
	return id
}

// -------------- rendering helpers --------------

func listLines(d render.Display, categories []string, counts map[string]int) []string {
	t := ui.Current()
	header := fmt.Sprintf("%s  %s %d/%d",
		ui.C(t.Title, "Items"),
		ui.C(t.Accent, "shown"), d.Count, d.Total,
	)
	if d.Filter.Category != filter.All {
		header += "  " + ui.C(t.Accent, "category") + " " + d.Filter.Category
	}
	if q := strings.TrimSpace(d.Filter.Search); q != "" {
		header += "  " + ui.C(t.Accent, "search") + " " + fmt.Sprintf("%q", q)
	}

	perCategory := make([]string, 0, len(categories))
	for i, c := range categories {
		perCategory = append(perCategory, ui.C(t.BadgeColor(i), c)+" "+strconv.Itoa(counts[c]))
	}

	lines := []string{
		header,
		ui.C(t.Muted, ui.ShareBar(d.Count, d.Total, 20)),
		strings.Join(perCategory, "  "),
		"",
	}
	if d.Empty {
		msg := "no items"
		if d.Filter.Active() {
			msg = "nothing matches"
		}
		lines = append(lines, ui.C(t.Muted, msg))
	}
	for _, r := range d.Rows {
		badge := ui.C(t.BadgeColor(indexOf(categories, r.Category)), "["+r.Category+"]")
		lines = append(lines,
			fmt.Sprintf("%s %s %s %s", ui.C(t.Muted, shortID(r.ID)), t.Bullet, r.Text, badge),
			ui.C(t.Muted, strings.Repeat(" ", shortIDLen+3)+r.Created),
		)
	}
	lines = append(lines, "")
	lines = append(lines, ui.C(t.Muted, "Tip: add with `tada add \"Buy milk\"`"))
	return lines
}

func indexOf(xs []string, s string) int {
	for i, v := range xs {
		if v == s {
			return i
		}
	}
	return -1
}
