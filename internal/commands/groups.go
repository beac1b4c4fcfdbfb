// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/vrcgroup/vrcgroup-cli/internal/groups"
	"github.com/vrcgroup/vrcgroup-cli/internal/models"
	"github.com/vrcgroup/vrcgroup-cli/internal/utils"
)

const (
	outputTable = "table"
	outputJSON  = "json"
	outputYAML  = "yaml"
)

func newGroupsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "groups",
		Aliases: []string{"group"},
		Short:   "List and update your group memberships",
	}

	cmd.AddCommand(newGroupsListCommand())
	cmd.AddCommand(newSetVisibilityCommand())
	cmd.AddCommand(newRepresentCommand())
	cmd.AddCommand(newRepresentedCommand())
	return cmd
}

type listOptions struct {
	search string
	fuzzy  bool
	sort   string
	order  string
	output string
	cached bool
}

func newGroupsListCommand() *cobra.Command {
	var opts listOptions

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the groups you belong to",
		Example: `  vrcgroup groups list
  vrcgroup groups list --search photo --output json
  vrcgroup groups list --sort memberCount --order desc`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sortBy, err := models.ParseGroupSortBy(opts.sort)
			if err != nil {
				return err
			}
			descending, err := parseOrder(opts.order)
			if err != nil {
				return err
			}
			if err := validateOutput(opts.output); err != nil {
				return err
			}

			c := getContainer()
			snapshots, err := c.Snapshots(cmd.Context())
			if err != nil {
				return err
			}

			var list []models.Group
			if opts.cached {
				snap, err := snapshots.Load()
				if err != nil {
					return err
				}
				if snap == nil {
					return fmt.Errorf("no cached group list, run 'vrcgroup groups list' without --cached first")
				}
				logger.Debug("using cached groups", "age", snap.Age(), "count", len(snap.Groups))
				fmt.Fprintln(cmd.ErrOrStderr(), dimStyle.Render("Cached list from "+utils.FormatTimeAgo(snap.FetchedAt)))
				list = snap.Groups
			} else {
				client, err := c.Client()
				if err != nil {
					return err
				}
				list, err = client.ListGroups(cmd.Context())
				if err != nil {
					return err
				}
				if err := snapshots.Save(list); err != nil {
					logger.Warn("failed to cache group list", "error", err)
				}
			}

			list = models.FilterGroups(list, &models.GroupFilter{
				Query:      opts.search,
				Fuzzy:      opts.fuzzy,
				SortBy:     sortBy,
				Descending: descending,
			})
			return printGroups(cmd.OutOrStdout(), list, opts.output)
		},
	}

	cmd.Flags().StringVarP(&opts.search, "search", "s", "", "only show groups whose name matches")
	cmd.Flags().BoolVar(&opts.fuzzy, "fuzzy", false, "use fuzzy matching for --search")
	cmd.Flags().StringVar(&opts.sort, "sort", string(models.SortByName), "sort by name, createdAt or memberCount")
	cmd.Flags().StringVar(&opts.order, "order", "asc", "sort order (asc or desc)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", outputTable, "output format (table, json, yaml)")
	cmd.Flags().BoolVar(&opts.cached, "cached", false, "show the last fetched list without calling the API")
	return cmd
}

func parseOrder(order string) (bool, error) {
	switch strings.ToLower(order) {
	case "", "asc":
		return false, nil
	case "desc":
		return true, nil
	}
	return false, fmt.Errorf("invalid order '%s', must be asc or desc", order)
}

func validateOutput(format string) error {
	switch format {
	case outputTable, outputJSON, outputYAML:
		return nil
	}
	return fmt.Errorf("invalid output format '%s', must be one of: table, json, yaml", format)
}

func printGroups(w io.Writer, list []models.Group, format string) error {
	switch format {
	case outputJSON:
		if list == nil {
			list = []models.Group{}
		}
		b, err := json.MarshalIndent(list, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(b))
		return nil
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(list); err != nil {
			return err
		}
		return enc.Close()
	}

	if len(list) == 0 {
		fmt.Fprintln(w, "No groups found")
		return nil
	}

	idCol := lipgloss.NewStyle().Width(42)
	nameCol := lipgloss.NewStyle().Width(32)
	visCol := lipgloss.NewStyle().Width(14)
	repCol := lipgloss.NewStyle().Width(5)

	fmt.Fprintln(w, headerStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top,
		idCol.Render("ID"), nameCol.Render("NAME"), visCol.Render("VISIBILITY"), repCol.Render("REP"), "MEMBERS")))
	for _, g := range list {
		rep := ""
		if g.IsRepresenting {
			rep = "★"
		}
		members := "-"
		if g.MemberCount != nil {
			members = strconv.Itoa(*g.MemberCount)
		}
		fmt.Fprintln(w, lipgloss.JoinHorizontal(lipgloss.Top,
			idCol.Render(g.ID),
			nameCol.Render(utils.TruncateWithEllipsis(g.Name, 30)),
			visCol.Render(g.Visibility.Label()),
			repCol.Render(rep),
			members,
		))
	}
	fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf("%d groups", len(list))))
	return nil
}

type setVisibilityOptions struct {
	all    bool
	search string
	fuzzy  bool
}

func newSetVisibilityCommand() *cobra.Command {
	var opts setVisibilityOptions

	cmd := &cobra.Command{
		Use:   "set-visibility <visible|friends|hidden> [group-id...]",
		Short: "Change how groups are shown on your profile",
		Long: `Change the visibility of one or more group memberships. Groups already at the
requested visibility are skipped. Updates run a few at a time and a failed
update does not stop the others.`,
		Example: `  vrcgroup groups set-visibility hidden grp_1234 grp_5678
  vrcgroup groups set-visibility friends --search "photo"
  vrcgroup groups set-visibility visible --all`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := models.ParseVisibility(args[0])
			if err != nil {
				return err
			}
			ids := args[1:]
			if len(ids) == 0 && !opts.all && opts.search == "" {
				return fmt.Errorf("specify group IDs, --search or --all")
			}

			out := cmd.OutOrStdout()
			session, err := getContainer().NewSession(consoleNotifier{out: out})
			if err != nil {
				return err
			}
			if err := session.Refresh(cmd.Context()); err != nil {
				return err
			}

			if err := selectTargets(out, session, ids, opts); err != nil {
				return err
			}
			if err := session.SetTarget(target); err != nil {
				return err
			}

			bar := newProgressBar(out, session.Selection().Len(), fmt.Sprintf("Setting %s", target.Label()))
			outcome, err := session.BulkUpdate(cmd.Context(), func(p groups.Progress) {
				_ = bar.Set(p.Done)
			})
			_ = bar.Finish()
			fmt.Fprintln(out)
			if err != nil {
				return err
			}

			return bulkError(outcome)
		},
	}

	cmd.Flags().BoolVar(&opts.all, "all", false, "update every group")
	cmd.Flags().StringVarP(&opts.search, "search", "s", "", "update groups whose name matches")
	cmd.Flags().BoolVar(&opts.fuzzy, "fuzzy", false, "use fuzzy matching for --search")
	return cmd
}

// selectTargets fills the session selection from explicit IDs and filters
func selectTargets(out io.Writer, session *groups.Session, ids []string, opts setVisibilityOptions) error {
	list := session.Groups()
	known := models.GroupIndex(list)

	for _, id := range ids {
		if _, ok := known[id]; !ok {
			return fmt.Errorf("%w: %s", groups.ErrGroupNotFound, id)
		}
		if err := session.Select(id, true); err != nil {
			return err
		}
	}

	if opts.all {
		return session.SelectAll(true)
	}
	if opts.search != "" {
		matches := models.FilterGroups(list, &models.GroupFilter{Query: opts.search, Fuzzy: opts.fuzzy})
		if len(matches) == 0 {
			fmt.Fprintf(out, "%s No groups match %q\n", warnStyle.Render("!"), opts.search)
		}
		for _, g := range matches {
			if err := session.Select(g.ID, true); err != nil {
				return err
			}
		}
	}
	return nil
}

func newProgressBar(w io.Writer, total int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerPadding: "░",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}

// bulkError turns a batch outcome into the command's exit error
func bulkError(outcome *groups.BulkOutcome) error {
	if outcome == nil {
		return nil
	}
	if outcome.DispatchErr != nil {
		return fmt.Errorf("bulk update aborted: %w", outcome.DispatchErr)
	}
	if failed := outcome.Failed(); len(failed) > 0 {
		errs := make([]error, 0, len(failed))
		for _, r := range failed {
			errs = append(errs, fmt.Errorf("%s: %w", r.GroupID, r.Err))
		}
		return fmt.Errorf("%d of %d updates failed: %w", len(failed), outcome.Total, stderrors.Join(errs...))
	}
	return nil
}

// pickGroup asks the user to choose a group; swapped out in tests
var pickGroup = func(list []models.Group) (string, error) {
	if !term.IsTerminal(getStdinFD()) {
		return "", fmt.Errorf("no interactive terminal available, pass a group ID")
	}

	idx, err := fuzzyfinder.Find(
		list,
		func(i int) string {
			marker := "  "
			if list[i].IsRepresenting {
				marker = "★ "
			}
			return marker + list[i].Name
		},
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return ""
			}
			g := list[i]
			return fmt.Sprintf("%s\n%s\n\nVisibility: %s\nRepresenting: %t\nCreated: %s\n\n%s",
				g.Name, g.ID, g.Visibility.Label(), g.IsRepresenting, utils.FormatDate(g.CreatedAt), g.Description)
		}),
		fuzzyfinder.WithHeader("Select a group (↑↓ to navigate, Enter to select, Esc to cancel)"),
	)
	if err != nil {
		return "", err
	}
	return list[idx].ID, nil
}

func newRepresentCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "represent [group-id]",
		Short: "Toggle whether you represent a group",
		Long: `Toggle the representation flag of a group. Representing a group clears the
flag on every other group. Running it on the group you already represent
stops representing it. Without an ID an interactive picker is shown.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			session, err := getContainer().NewSession(consoleNotifier{out: out})
			if err != nil {
				return err
			}
			if err := session.Refresh(cmd.Context()); err != nil {
				return err
			}

			var id string
			if len(args) > 0 {
				id = args[0]
			} else {
				list := session.Groups()
				if len(list) == 0 {
					return fmt.Errorf("you are not a member of any group")
				}
				id, err = pickGroup(list)
				if err != nil {
					return err
				}
			}

			result, err := session.ToggleRepresentation(cmd.Context(), id)
			if err != nil {
				return err
			}
			name := id
			if g, ok := models.GroupIndex(session.Groups())[id]; ok {
				name = g.Name
			}
			if result.Representing {
				fmt.Fprintf(out, "  Now representing %s\n", name)
			} else {
				fmt.Fprintf(out, "  No longer representing %s\n", name)
			}
			return nil
		},
	}
}

func newRepresentedCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "represented",
		Short: "Show the group you currently represent",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateOutput(output); err != nil {
				return err
			}
			client, err := getContainer().Client()
			if err != nil {
				return err
			}
			group, err := client.RepresentedGroup(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if group == nil {
				if output == outputTable {
					fmt.Fprintln(out, "You are not representing any group")
					return nil
				}
				return printGroups(out, []models.Group{}, output)
			}
			return printGroups(out, []models.Group{*group}, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "output format (table, json, yaml)")
	return cmd
}
