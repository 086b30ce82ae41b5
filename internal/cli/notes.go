package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nhle/dayboard/internal/model"
	"github.com/nhle/dayboard/internal/store"
)

func newNotesCommand(r *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "notes",
		Aliases: []string{"note"},
		Short:   "Local notepad",
	}

	var body string
	add := &cobra.Command{
		Use:   "add <title>",
		Short: "Write a note",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			note, err := r.env.Store.AddNote(cmd.Context(), strings.Join(args, " "), body, r.env.Now())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved note %s\n", shortID(note.ID))
			return nil
		},
	}
	add.Flags().StringVar(&body, "body", "", "note text")

	list := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show every note",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			notes, err := r.env.Store.Notes(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(notes) == 0 {
				fmt.Fprintln(out, "No notes")
				return nil
			}
			for _, n := range notes {
				fmt.Fprintf(out, "%s  %s  %s\n", shortID(n.ID), n.UpdatedAt.Local().Format("2006-01-02"), noteHeadline(n))
			}
			return nil
		},
	}

	var newTitle, newBody string
	edit := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a note's title or body",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			note, err := findNote(ctx, r.env.Store, args[0])
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("title") {
				note.Title = newTitle
			}
			if cmd.Flags().Changed("body") {
				note.Body = newBody
			}
			if _, err := r.env.Store.UpdateNote(ctx, note, r.env.Now()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated note %s\n", shortID(note.ID))
			return nil
		},
	}
	edit.Flags().StringVar(&newTitle, "title", "", "new title")
	edit.Flags().StringVar(&newBody, "body", "", "new text")

	rm := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a note",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			note, err := findNote(ctx, r.env.Store, args[0])
			if err != nil {
				return err
			}
			if err := r.env.Store.DeleteNote(ctx, note.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted note %s\n", shortID(note.ID))
			return nil
		},
	}

	cmd.AddCommand(add, list, edit, rm)
	return cmd
}

// findNote resolves a full id or a unique id prefix.
func findNote(ctx context.Context, s store.Store, ref string) (model.Note, error) {
	notes, err := s.Notes(ctx)
	if err != nil {
		return model.Note{}, err
	}

	var matches []model.Note
	for _, n := range notes {
		if n.ID == ref {
			return n, nil
		}
		if strings.HasPrefix(n.ID, ref) {
			matches = append(matches, n)
		}
	}
	switch len(matches) {
	case 0:
		return model.Note{}, fmt.Errorf("note %q: %w", ref, store.ErrNotFound)
	case 1:
		return matches[0], nil
	}
	return model.Note{}, errors.New("note id " + ref + " is ambiguous")
}

func noteHeadline(n model.Note) string {
	if n.Title != "" {
		return n.Title
	}
	line, _, _ := strings.Cut(n.Body, "\n")
	if len(line) > 60 {
		line = line[:57] + "..."
	}
	return line
}
