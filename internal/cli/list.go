package cli

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/nhle/dayboard/internal/model"
	"github.com/nhle/dayboard/internal/todo"
)

// smartLists are shown before user lists and resolve by name like them.
var smartLists = []model.TodoList{
	{ID: model.ListMyDay, Name: "My Day"},
	{ID: model.ListImportant, Name: "Important"},
	{ID: model.ListPlanned, Name: "Planned"},
	{ID: model.ListAll, Name: "All"},
}

func allLists(st todo.State) []model.TodoList {
	lists := make([]model.TodoList, 0, len(smartLists)+len(st.Lists))
	lists = append(lists, smartLists...)
	return append(lists, st.Lists...)
}

// resolveList finds a list by id or by case-insensitive name.
func resolveList(st todo.State, ref string) (model.TodoList, error) {
	ref = strings.TrimSpace(ref)
	for _, l := range allLists(st) {
		if l.ID == ref || strings.EqualFold(l.Name, ref) {
			return l, nil
		}
	}
	return model.TodoList{}, fmt.Errorf("no list named %q", ref)
}

func listName(st todo.State, id string) string {
	for _, l := range allLists(st) {
		if l.ID == id {
			return l.Name
		}
	}
	if id == "" {
		return "Tasks"
	}
	return id
}

func newListCommand(r *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Manage todo lists",
		Long:  "Lists are kept on this machine; the server only sees the list id on each todo.",
	}

	cmd.AddCommand(newListShowCommand(r))
	cmd.AddCommand(newListAddCommand(r))
	cmd.AddCommand(newListRemoveCommand(r))
	cmd.AddCommand(newListUseCommand(r))
	return cmd
}

func newListShowCommand(r *runtime) *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"show"},
		Short:   "Show every list with its open todo count",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st := r.env.Todos.State()
			counts := todo.OpenCounts(st, r.env.Now())
			out := cmd.OutOrStdout()

			for _, l := range allLists(st) {
				marker := " "
				if l.ID == st.ActiveListID {
					marker = ">"
				}
				fmt.Fprintf(out, "%s %-20s %3d  %s\n", marker, l.Name, counts[l.ID], l.ID)
			}
			if orphans := todo.OrphanTodos(st); len(orphans) > 0 {
				fmt.Fprintf(out, "  %d todos point at lists that no longer exist\n", len(orphans))
			}
			return nil
		},
	}
}

func newListAddCommand(r *runtime) *cobra.Command {
	var color string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a list and make it active",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args, " ")
			st := r.env.Todos.State()
			if existing, err := resolveList(st, name); err == nil {
				return fmt.Errorf("list %q already exists (%s)", existing.Name, existing.ID)
			}

			list := model.TodoList{ID: uuid.NewString(), Name: name, Color: color}
			r.env.Todos.Dispatch(todo.AddList{List: list})
			r.env.Todos.Dispatch(todo.SetActiveList{ID: list.ID})

			fmt.Fprintf(cmd.OutOrStdout(), "Created list %s (%s)\n", list.Name, list.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&color, "color", "", "hex color, e.g. #ff8800")
	return cmd
}

func newListRemoveCommand(r *runtime) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <list>",
		Aliases: []string{"delete"},
		Short:   "Delete one of your lists",
		Long:    "Todos in the list are kept; they show up in All until moved.",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := resolveList(r.env.Todos.State(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			if model.IsReservedList(list.ID) {
				return fmt.Errorf("%s is built in and cannot be deleted", list.Name)
			}

			r.env.Todos.Dispatch(todo.DeleteList{ID: list.ID})
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted list %s\n", list.Name)
			return nil
		},
	}
}

func newListUseCommand(r *runtime) *cobra.Command {
	return &cobra.Command{
		Use:     "use <list>",
		Aliases: []string{"goto"},
		Short:   "Make a list the active one",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := resolveList(r.env.Todos.State(), strings.Join(args, " "))
			if err != nil {
				return err
			}

			r.env.Todos.Dispatch(todo.SetActiveList{ID: list.ID})
			fmt.Fprintf(cmd.OutOrStdout(), "Now on %s\n", list.Name)
			return nil
		},
	}
}
