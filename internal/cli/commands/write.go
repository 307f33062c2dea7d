package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/SscSPs/burnout_journal/internal/cli/printers"
	"github.com/SscSPs/burnout_journal/internal/client/editor"
)

const editorHelp = `Type to append to the active entry; it saves itself after a pause.
  :entries     list entries (* marks the active one)
  :open N      switch to entry N
  :new         start a new entry
  :delete      delete the active entry
  :show        print the active entry
  :clear       empty the active entry
  :quit        save and exit`

func addWrite(topLevel *cobra.Command, o *Options) {
	cmd := &cobra.Command{
		Use:   "write [date]",
		Short: "Write in a journal, today's by default.",
		Long:  "Write in a journal, today's by default.\n\n" + editorHelp,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			date, err := journalDateArg(args, time.Now())
			if err != nil {
				return err
			}
			store, release, err := o.journals(ctx)
			if err != nil {
				return err
			}
			defer release()

			j, err := store.GetJournal(ctx, date)
			if err != nil {
				return err
			}
			if j == nil {
				if j, err = store.CreateJournalWithEntry(ctx, date); err != nil {
					return err
				}
			}

			ed := editor.New(store, date, j.Entries,
				editor.WithSaveDelay(o.AutosaveDelay),
				editor.WithEntryCooldown(o.EntryCooldown),
				editor.WithLogger(o.logger),
			)
			printers.Title(cmd.OutOrStdout(), date)
			printers.Faint(cmd.OutOrStdout(), ":help for commands")
			return runEditor(ctx, ed, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	topLevel.AddCommand(cmd)
}

// runEditor drives ed from line input until :quit or EOF, then saves and closes it.
func runEditor(ctx context.Context, ed *editor.Editor, in io.Reader, out io.Writer) error {
	defer func() {
		// an autosave in flight during the first flush reschedules newer content
		for i := 0; i < 2; i++ {
			ed.Flush()
			ed.Wait()
		}
		ed.Close()
	}()

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, ":") {
			current := ed.State().Content
			if current != "" {
				current += "\n"
			}
			ed.UpdateContent(current + line)
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case ":q", ":quit":
			return nil
		case ":help":
			_, _ = fmt.Fprintln(out, editorHelp)
		case ":entries":
			st := ed.State()
			printers.Entries(out, st.Entries, st.ActiveEntryID)
		case ":show":
			_, _ = fmt.Fprintln(out, ed.State().Content)
		case ":clear":
			ed.UpdateContent("")
		case ":new":
			switch _, err := ed.AddEntry(ctx); {
			case errors.Is(err, editor.ErrEntryCooldown):
				printers.Warn(out, "Please wait a minute before starting another entry.")
			case err != nil:
				printers.Warn(out, "Could not start a new entry.")
			default:
				printers.Success(out, "Started entry %d.", len(ed.State().Entries))
			}
		case ":open":
			entries := ed.State().Entries
			n, err := strconv.Atoi(strings.Join(fields[1:], ""))
			if err != nil || n < 1 || n > len(entries) {
				printers.Warn(out, "Pick an entry between 1 and %d.", len(entries))
				continue
			}
			if err := ed.SelectEntry(entries[n-1].EntryID); err != nil {
				printers.Warn(out, "%s", err)
				continue
			}
			_, _ = fmt.Fprintln(out, ed.State().Content)
		case ":delete":
			st := ed.State()
			if st.ActiveEntryID == "" {
				printers.Warn(out, "No entry selected.")
				continue
			}
			if err := ed.DeleteEntry(ctx, st.ActiveEntryID); err != nil {
				printers.Warn(out, "Could not delete the entry.")
				continue
			}
			printers.Success(out, "Deleted.")
		default:
			printers.Warn(out, "Unknown command %s, try :help.", fields[0])
		}
	}
	return scanner.Err()
}
