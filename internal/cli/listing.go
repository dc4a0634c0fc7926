package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pdxmph/todos/internal/db"
	"github.com/pdxmph/todos/internal/listing"
)

// filterFlags are the listing filters shared by show and export
type filterFlags struct {
	category  string
	status    string
	priority  string
	dueBefore string
	dueAfter  string
	sort      string
}

func (f *filterFlags) register(cmd *cobra.Command, withDates bool) {
	cmd.Flags().StringVarP(&f.category, "category", "c", "", "Only tasks in this category (exact match)")
	cmd.Flags().StringVarP(&f.status, "status", "s", "", "open|done")
	cmd.Flags().StringVarP(&f.priority, "priority", "p", "", "low|medium|high")
	if withDates {
		cmd.Flags().StringVar(&f.dueBefore, "due-before", "", "Due strictly before YYYY-MM-DD")
		cmd.Flags().StringVar(&f.dueAfter, "due-after", "", "Due strictly after YYYY-MM-DD")
		cmd.Flags().StringVar(&f.sort, "sort", string(listing.SortByID), "id|priority|due|created|status")
	}
}

// options validates the flags into listing options
func (f *filterFlags) options() (listing.Options, error) {
	var opts listing.Options
	opts.Category = f.category

	if f.status != "" {
		s, err := listing.ParseStatus(f.status)
		if err != nil {
			return opts, err
		}
		opts.Status = &s
	}
	if f.priority != "" {
		p, err := listing.ParsePriority(f.priority)
		if err != nil {
			return opts, err
		}
		opts.Priority = &p
	}

	var err error
	if opts.DueBefore, err = listing.NormalizeOptionalDate(f.dueBefore); err != nil {
		return opts, err
	}
	if opts.DueAfter, err = listing.NormalizeOptionalDate(f.dueAfter); err != nil {
		return opts, err
	}
	if opts.Sort, err = listing.ParseSortKey(f.sort); err != nil {
		return opts, err
	}
	return opts, nil
}

// resolvePosition maps a POSITION argument to a task id using the full
// id-ordered list as it is right now
func (a *app) resolvePosition(arg string) (int64, error) {
	position, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("%w: position must be a number, got %q", listing.ErrInvalidArgument, arg)
	}

	tasks, err := a.db.ListTasks()
	if err != nil {
		return 0, err
	}
	return listing.ResolvePosition(tasks, position)
}

// showTasks prints the listing for opts, the same output as `todos show`
func (a *app) showTasks(cmd *cobra.Command, opts listing.Options) error {
	tasks, err := a.db.ListTasks()
	if err != nil {
		return err
	}
	return a.printListing(cmd, listing.Apply(tasks, opts))
}

func (a *app) printListing(cmd *cobra.Command, tasks []db.Task) error {
	r := a.renderer(cmd)
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, r.Title("Todos"))
	fmt.Fprintln(out)
	if len(tasks) == 0 {
		fmt.Fprintln(out, r.Warning("No tasks match your filters."))
		return nil
	}

	fmt.Fprintln(out, r.Tasks(tasks))
	fmt.Fprintln(out)
	fmt.Fprintln(out, r.Dim("Use the index (#) shown above for update/complete/delete operations."))
	return nil
}
