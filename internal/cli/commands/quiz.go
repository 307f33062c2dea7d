package commands

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SscSPs/burnout_journal/internal/cli/printers"
	"github.com/SscSPs/burnout_journal/internal/dto"
)

func addQuiz(topLevel *cobra.Command, o *Options) {
	quiz := &cobra.Command{
		Use:   "quiz",
		Short: "Take the burnout questionnaire.",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := o.apiClient()
			if err != nil {
				return err
			}
			questions, err := client.QuizQuestions(cmd.Context())
			if err != nil {
				return err
			}
			responses, err := askQuiz(questions, cmd.InOrStdin(), cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if _, err := client.SubmitQuiz(cmd.Context(), responses); err != nil {
				return err
			}
			printers.Success(cmd.OutOrStdout(), "Saved. Run `journal quiz stats` to see the trend.")
			return nil
		},
	}

	stats := &cobra.Command{
		Use:   "stats",
		Short: "Show questionnaire scores over time.",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := o.apiClient()
			if err != nil {
				return err
			}
			s, err := client.QuizStats(cmd.Context())
			if err != nil {
				return err
			}
			printers.QuizStats(cmd.OutOrStdout(), s)
			return nil
		},
	}

	quiz.AddCommand(stats)
	topLevel.AddCommand(quiz)
}

// askQuiz prompts for every question, re-asking until the answer is on the scale.
func askQuiz(q *dto.QuizQuestionsResponse, in io.Reader, out io.Writer) (map[int]int, error) {
	scale := make([]string, len(q.Answers))
	for i, a := range q.Answers {
		scale[i] = fmt.Sprintf("%d=%s", i, a)
	}
	printers.Faint(out, "Answer each statement: %s", strings.Join(scale, ", "))

	scanner := bufio.NewScanner(in)
	responses := make(map[int]int, len(q.Questions))
	for i, question := range q.Questions {
		for {
			_, _ = fmt.Fprintf(out, "%2d. %s ", i+1, question)
			if !scanner.Scan() {
				if err := scanner.Err(); err != nil {
					return nil, err
				}
				return nil, fmt.Errorf("questionnaire ended after %d of %d answers", i, len(q.Questions))
			}
			answer, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
			if err == nil && answer >= 0 && answer < len(q.Answers) {
				responses[i] = answer
				break
			}
			printers.Warn(out, "Enter a number from 0 to %d.", len(q.Answers)-1)
		}
	}
	return responses, nil
}
