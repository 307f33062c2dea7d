package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/SscSPs/burnout_journal/internal/cli/printers"
	"github.com/SscSPs/burnout_journal/internal/client/livecoach"
)

const coachReplyTimeout = 60 * time.Second

var coachVoice = color.New(color.FgCyan)

// coach is a live session plus the channels its callbacks feed.
type coach struct {
	session *livecoach.Session
	replies chan string
	errs    chan error
}

func (o *Options) newCoach(source livecoach.SessionSource) *coach {
	c := &coach{replies: make(chan string, 4), errs: make(chan error, 4)}
	c.session = livecoach.New(source,
		livecoach.WithSetupTimeout(o.LiveSetupTimeout),
		livecoach.WithLogger(o.logger),
		livecoach.WithOnReply(func(r string) {
			select {
			case c.replies <- r:
			default:
			}
		}),
		livecoach.WithOnError(func(err error) {
			select {
			case c.errs <- err:
			default:
			}
		}),
	)
	return c
}

// ask sends text as one turn and waits for the completed reply.
func (c *coach) ask(ctx context.Context, text string) (string, error) {
	if err := c.session.Connect(ctx); err != nil {
		return "", err
	}
	if err := c.session.SendTurn(text); err != nil {
		return "", err
	}
	select {
	case reply := <-c.replies:
		return reply, nil
	case err := <-c.errs:
		return "", err
	case <-time.After(coachReplyTimeout):
		return "", errors.New("the coach did not answer in time")
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func addCoach(topLevel *cobra.Command, o *Options) {
	cmd := &cobra.Command{
		Use:   "coach",
		Short: "Talk things through with the live coach.",
		Long:  "Each line you type is sent as one turn. An empty line or EOF ends the conversation.",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := o.apiClient()
			if err != nil {
				return err
			}
			c := o.newCoach(client)
			defer c.session.Close()

			if err := c.session.Connect(cmd.Context()); err != nil {
				return err
			}
			printers.Faint(cmd.OutOrStdout(), "Connected. An empty line ends the conversation.")
			return runCoach(cmd.Context(), c, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	topLevel.AddCommand(cmd)
}

func runCoach(ctx context.Context, c *coach, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	for {
		_, _ = fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			return nil
		}
		reply, err := c.ask(ctx, text)
		if err != nil {
			printers.Warn(out, "%s", err)
			continue
		}
		_, _ = coachVoice.Fprintln(out, reply)
	}
}
