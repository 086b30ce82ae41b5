package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/nhle/dayboard/internal/model"
	"github.com/nhle/dayboard/internal/todo"
)

const dayFormat = "2006-01-02"

// todoFlags are the editable fields shared by `todo add` and `todo update`.
type todoFlags struct {
	notes     string
	listRef   string
	due       string
	remind    string
	priority  string
	repeat    string
	tags      []string
	important bool
}

func (f *todoFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.notes, "notes", "", "free-form notes")
	cmd.Flags().StringVar(&f.listRef, "list", "", "list id or name")
	cmd.Flags().StringVar(&f.due, "due", "", "due date (YYYY-MM-DD, today or tomorrow)")
	cmd.Flags().StringVar(&f.remind, "remind", "", "reminder date (YYYY-MM-DD, today or tomorrow)")
	cmd.Flags().StringVar(&f.priority, "priority", "", "low, medium or high")
	cmd.Flags().StringVar(&f.repeat, "repeat", "", "daily, weekly, monthly or yearly")
	cmd.Flags().StringSliceVar(&f.tags, "tag", nil, "label, repeatable")
	cmd.Flags().BoolVar(&f.important, "important", false, "mark as important")
}

// patch converts the flags the user actually set into a TodoPatch.
func (f *todoFlags) patch(cmd *cobra.Command, st todo.State, now time.Time) (model.TodoPatch, error) {
	var p model.TodoPatch
	changed := cmd.Flags().Changed

	if changed("notes") {
		p.Notes = model.Ptr(f.notes)
	}
	if changed("list") {
		list, err := resolveList(st, f.listRef)
		if err != nil {
			return p, err
		}
		if model.IsReservedList(list.ID) && list.ID != model.ListTasks {
			return p, fmt.Errorf("%s is a smart list, todos cannot be filed in it", list.Name)
		}
		p.ListID = model.Ptr(list.ID)
	}
	if changed("due") {
		due, err := parseDay(f.due, now)
		if err != nil {
			return p, fmt.Errorf("--due: %w", err)
		}
		p.DueDate = &due
	}
	if changed("remind") {
		remind, err := parseDay(f.remind, now)
		if err != nil {
			return p, fmt.Errorf("--remind: %w", err)
		}
		p.ReminderDate = &remind
	}
	if changed("priority") {
		prio := model.Priority(strings.ToLower(f.priority))
		if prio == "" || !prio.Valid() {
			return p, fmt.Errorf("--priority must be low, medium or high, got %q", f.priority)
		}
		p.Priority = &prio
	}
	if changed("repeat") {
		switch rt := model.RecurrenceType(strings.ToLower(f.repeat)); rt {
		case model.RecurrenceDaily, model.RecurrenceWeekly, model.RecurrenceMonthly, model.RecurrenceYearly:
			p.Recurrence = &model.TodoRecurrence{Type: rt, Interval: 1}
		default:
			return p, fmt.Errorf("--repeat must be daily, weekly, monthly or yearly, got %q", f.repeat)
		}
	}
	if changed("tag") {
		p.Tags = f.tags
	}
	if changed("important") {
		p.Important = model.Ptr(f.important)
	}
	return p, nil
}

func newTodoCommand(r *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "todo",
		Aliases: []string{"t"},
		Short:   "Manage todos",
		Long: `Todos live on the server. Every change is sent first and the local
copy is updated from the server's answer, so a failed command leaves
nothing half-applied.`,
	}

	cmd.AddCommand(newTodoListCommand(r))
	cmd.AddCommand(newTodoAddCommand(r))
	cmd.AddCommand(newTodoUpdateCommand(r))
	cmd.AddCommand(newTodoDoneCommand(r))
	cmd.AddCommand(newTodoRemoveCommand(r))
	cmd.AddCommand(newTodoShowCommand(r))
	cmd.AddCommand(newTodoSyncCommand(r))
	return cmd
}

func newTodoListCommand(r *runtime) *cobra.Command {
	var listRef, filter, tag string
	var sync bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show the todos of the active list",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env := r.env
			if sync {
				if err := refresh(cmd, env); err != nil {
					return err
				}
			}

			st := env.Todos.State()
			if listRef != "" {
				list, err := resolveList(st, listRef)
				if err != nil {
					return err
				}
				st.ActiveListID = list.ID
			}
			if filter != "" {
				f := model.TodoFilter(filter)
				if !f.Valid() {
					return fmt.Errorf("--filter must be all, active or completed, got %q", filter)
				}
				st.Filter = f
			}

			now := env.Now()
			name := listName(st, st.ActiveListID)
			todos := todo.VisibleTodos(st, now)
			if tag != "" {
				todos = withTag(todos, tag)
			}
			out := cmd.OutOrStdout()
			if len(todos) == 0 {
				fmt.Fprintf(out, "%s: nothing to show (%s)\n", name, st.Filter)
				return nil
			}

			fmt.Fprintf(out, "%s (%s)\n", name, st.Filter)
			fmt.Fprintln(out, renderTodoTable(todos, now))
			return nil
		},
	}

	cmd.Flags().StringVar(&listRef, "list", "", "list id or name (default: the active list)")
	cmd.Flags().StringVar(&filter, "filter", "", "all, active or completed (default: the saved filter)")
	cmd.Flags().BoolVar(&sync, "sync", false, "refresh from the server first")
	cmd.Flags().StringVar(&tag, "tag", "", "only todos carrying this label")
	return cmd
}

func withTag(todos []model.TodoItem, tag string) []model.TodoItem {
	out := make([]model.TodoItem, 0, len(todos))
	for _, t := range todos {
		if t.HasTag(tag) {
			out = append(out, t)
		}
	}
	return out
}

func newTodoAddCommand(r *runtime) *cobra.Command {
	var flags todoFlags

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a todo",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env := r.env
			st := env.Todos.State()
			now := env.Now()

			patch, err := flags.patch(cmd, st, now)
			if err != nil {
				return err
			}
			patch.Title = model.Ptr(strings.Join(args, " "))
			seedFromActiveList(&patch, st.ActiveListID, now)

			ctx, cancel, err := env.remote(cmd.Context())
			if err != nil {
				return err
			}
			defer cancel()

			created, err := env.Ops.CreateTodo(ctx, patch)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s  %s\n", shortID(created.ID), created.Title)
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

// seedFromActiveList fills what the active smart list implies, unless the
// user already said otherwise: Important marks the todo important, My Day
// and Planned give it today's due date.
func seedFromActiveList(p *model.TodoPatch, activeListID string, now time.Time) {
	switch activeListID {
	case model.ListImportant:
		if p.Important == nil {
			p.Important = model.Ptr(true)
		}
	case model.ListMyDay, model.ListPlanned:
		if p.DueDate == nil {
			today := startOfDay(now)
			p.DueDate = &today
		}
	}
}

func newTodoUpdateCommand(r *runtime) *cobra.Command {
	var flags todoFlags
	var title string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of a todo",
		Long:  "Only the flags you pass are sent; everything else stays as it is.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env := r.env
			st := env.Todos.State()

			patch, err := flags.patch(cmd, st, env.Now())
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("title") {
				if strings.TrimSpace(title) == "" {
					return errors.New("--title must not be empty")
				}
				patch.Title = model.Ptr(title)
			}
			if patch.IsEmpty() {
				return errors.New("nothing to update, pass at least one field flag")
			}

			id := args[0]
			if t, err := findTodo(st, id); err == nil {
				id = t.ID
			} else if errors.Is(err, errAmbiguous) {
				return err
			}

			ctx, cancel, err := env.remote(cmd.Context())
			if err != nil {
				return err
			}
			defer cancel()

			updated, err := env.Ops.UpdateTodo(ctx, id, patch)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s  %s\n", shortID(updated.ID), updated.Title)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&title, "title", "", "new title")
	return cmd
}

func newTodoDoneCommand(r *runtime) *cobra.Command {
	return &cobra.Command{
		Use:     "done <id>",
		Aliases: []string{"toggle"},
		Short:   "Toggle a todo between open and completed",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env := r.env
			t, err := findTodo(env.Todos.State(), args[0])
			if err != nil {
				return err
			}

			ctx, cancel, err := env.remote(cmd.Context())
			if err != nil {
				return err
			}
			defer cancel()

			updated, err := env.Ops.ToggleTodoComplete(ctx, t.ID)
			if err != nil {
				return err
			}
			if updated == nil {
				return fmt.Errorf("todo %s is no longer known locally", shortID(t.ID))
			}

			state := "reopened"
			if updated.Completed {
				state = "completed"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s  %s\n", capitalize(state), shortID(updated.ID), updated.Title)
			return nil
		},
	}
}

func newTodoRemoveCommand(r *runtime) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a todo",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env := r.env
			id := args[0]
			if t, err := findTodo(env.Todos.State(), id); err == nil {
				id = t.ID
			} else if errors.Is(err, errAmbiguous) {
				return err
			}

			ctx, cancel, err := env.remote(cmd.Context())
			if err != nil {
				return err
			}
			defer cancel()

			if err := env.Ops.DeleteTodo(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", shortID(id))
			return nil
		},
	}
}

func newTodoShowCommand(r *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print every field of a todo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env := r.env
			st := env.Todos.State()
			t, err := findTodo(st, args[0])
			if err != nil {
				return err
			}
			printTodo(cmd.OutOrStdout(), t, listName(st, t.ListID), env.Now())
			return nil
		},
	}
}

func newTodoSyncCommand(r *runtime) *cobra.Command {
	return &cobra.Command{
		Use:     "sync",
		Aliases: []string{"refresh"},
		Short:   "Replace the local todos with the server's",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env := r.env
			if err := refresh(cmd, env); err != nil {
				return err
			}
			st := env.Todos.State()
			fmt.Fprintf(cmd.OutOrStdout(), "Synced %d todos in %d lists\n", len(st.Todos), len(st.Lists))
			return nil
		},
	}
}

func refresh(cmd *cobra.Command, env *Env) error {
	ctx, cancel, err := env.remote(cmd.Context())
	if err != nil {
		return err
	}
	defer cancel()
	return env.Ops.Refresh(ctx)
}

func renderTodoTable(todos []model.TodoItem, now time.Time) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "", "TITLE", "DUE", "PRIORITY", "STEPS")

	for _, item := range todos {
		mark := "[ ]"
		if item.Completed {
			mark = "[x]"
		}
		title := item.Title
		if item.Important {
			title = "* " + title
		}

		due := ""
		if item.DueDate != nil {
			due = item.DueDate.In(now.Location()).Format(dayFormat)
			if item.IsOverdue(now) {
				due += " overdue"
			}
		}

		steps := ""
		if done, total := item.StepProgress(); total > 0 {
			steps = fmt.Sprintf("%d/%d", done, total)
		}

		t.Row(shortID(item.ID), mark, title, due, string(item.Priority), steps)
	}
	return t.String()
}

func printTodo(w io.Writer, t model.TodoItem, list string, now time.Time) {
	status := "open"
	if t.Completed {
		status = "completed"
	}

	fmt.Fprintf(w, "%s\n", t.Title)
	fmt.Fprintf(w, "  id:        %s\n", t.ID)
	fmt.Fprintf(w, "  status:    %s\n", status)
	fmt.Fprintf(w, "  list:      %s\n", list)
	if t.Important {
		fmt.Fprintf(w, "  important: yes\n")
	}
	if t.Priority != "" {
		fmt.Fprintf(w, "  priority:  %s\n", t.Priority)
	}
	if t.DueDate != nil {
		due := t.DueDate.In(now.Location()).Format(dayFormat)
		if t.IsOverdue(now) {
			due += " (overdue)"
		}
		fmt.Fprintf(w, "  due:       %s\n", due)
	}
	if t.ReminderDate != nil {
		fmt.Fprintf(w, "  reminder:  %s\n", t.ReminderDate.In(now.Location()).Format("2006-01-02 15:04"))
	}
	if t.Recurrence != nil {
		fmt.Fprintf(w, "  repeats:   %s\n", describeRepeat(t, now))
	}
	if len(t.Tags) > 0 {
		fmt.Fprintf(w, "  tags:      %s\n", strings.Join(t.Tags, ", "))
	}
	if t.Notes != "" {
		fmt.Fprintf(w, "  notes:     %s\n", t.Notes)
	}
	if done, total := t.StepProgress(); total > 0 {
		fmt.Fprintf(w, "  steps:     %d/%d\n", done, total)
		for _, s := range t.Steps {
			mark := "[ ]"
			if s.Completed {
				mark = "[x]"
			}
			fmt.Fprintf(w, "    %s %s\n", mark, s.Title)
		}
	}
	for _, f := range t.Files {
		fmt.Fprintf(w, "  file:      %s\n", f.Name)
	}
}

func describeRepeat(t model.TodoItem, now time.Time) string {
	r := *t.Recurrence
	desc := string(r.Type)
	if r.Interval > 1 {
		desc = fmt.Sprintf("every %d (%s)", r.Interval, r.Type)
	}

	start := t.CreatedAt
	if t.DueDate != nil {
		start = *t.DueDate
	}
	if start.IsZero() {
		start = now
	}

	next, ok, err := r.Next(start, now)
	switch {
	case err != nil:
		return fmt.Sprintf("%s (invalid: %v)", desc, err)
	case !ok:
		return desc + ", ended"
	}
	return fmt.Sprintf("%s, next %s", desc, next.In(now.Location()).Format("Mon 2006-01-02"))
}

var errAmbiguous = errors.New("ambiguous todo id")

// findTodo resolves ref as a full id or a unique id prefix.
func findTodo(st todo.State, ref string) (model.TodoItem, error) {
	if t, ok := st.Todo(ref); ok {
		return t, nil
	}

	var matches []model.TodoItem
	for _, t := range st.Todos {
		if strings.HasPrefix(t.ID, ref) {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 0:
		return model.TodoItem{}, fmt.Errorf("no todo %q, run `dayboard todo sync` to refresh", ref)
	case 1:
		return matches[0], nil
	}
	return model.TodoItem{}, fmt.Errorf("%w: %q matches %d todos", errAmbiguous, ref, len(matches))
}

// parseDay accepts YYYY-MM-DD, today and tomorrow, in local time.
func parseDay(s string, now time.Time) (time.Time, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "today":
		return startOfDay(now), nil
	case "tomorrow":
		return startOfDay(now).AddDate(0, 0, 1), nil
	}
	day, err := time.ParseInLocation(dayFormat, strings.TrimSpace(s), now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("expected YYYY-MM-DD, got %q", s)
	}
	return day, nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
