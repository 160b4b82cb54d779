package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/at-ishikawa/verbdrill/internal/dictionary"
	"github.com/at-ishikawa/verbdrill/internal/inference"
	"github.com/at-ishikawa/verbdrill/internal/learning"
	"github.com/at-ishikawa/verbdrill/internal/practice"
)

const (
	commandQuit = "quit"
	commandExit = "exit"
	commandHint = "hint"
)

// DrillCLI runs one practice round per Session call.
type DrillCLI struct {
	*InteractiveDrillCLI
	trainer    *practice.Trainer
	repository learning.AttemptRepository
	dictionary dictionary.Lookuper
	explainer  inference.Client
	sessionID  string
	now        func() time.Time

	answered int
	correct  int
}

type DrillOption func(*DrillCLI)

// WithDictionary enables the "hint" command.
func WithDictionary(lookuper dictionary.Lookuper) DrillOption {
	return func(cli *DrillCLI) {
		cli.dictionary = lookuper
	}
}

// WithExplainer explains wrong answers.
func WithExplainer(client inference.Client) DrillOption {
	return func(cli *DrillCLI) {
		cli.explainer = client
	}
}

func WithClock(now func() time.Time) DrillOption {
	return func(cli *DrillCLI) {
		cli.now = now
	}
}

func NewDrillCLI(
	stdin io.Reader,
	stdout io.Writer,
	trainer *practice.Trainer,
	repository learning.AttemptRepository,
	sessionID string,
	opts ...DrillOption,
) *DrillCLI {
	cli := &DrillCLI{
		InteractiveDrillCLI: newInteractiveDrillCLI(stdin, stdout),
		trainer:             trainer,
		repository:          repository,
		sessionID:           sessionID,
		now:                 time.Now,
	}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// Session starts a fresh round, reads one answer, and shows feedback.
func (cli *DrillCLI) Session(ctx context.Context) error {
	round, err := cli.trainer.NextRound()
	if err != nil {
		return fmt.Errorf("trainer.NextRound() > %w", err)
	}
	task := round.Task()

	_, _ = fmt.Fprintln(cli.stdoutWriter)
	_, _ = cli.bold.Fprint(cli.stdoutWriter, "Task: ")
	_, _ = cli.italic.Fprintln(cli.stdoutWriter, task.String())

	startTime := cli.now()
	var answer string
	for {
		line, err := cli.readLine("Answer: ")
		if errors.Is(err, io.EOF) {
			cli.printSummary()
			return errEnd
		}
		if err != nil {
			return fmt.Errorf("error reading answer input: %w", err)
		}

		answer = strings.TrimSpace(line)
		switch strings.ToLower(answer) {
		case "":
			continue
		case commandQuit, commandExit:
			cli.printSummary()
			return errEnd
		case commandHint:
			cli.printHint(ctx, task.Verb)
			continue
		}
		break
	}

	result, err := round.Submit(answer)
	if err != nil {
		return fmt.Errorf("round.Submit() > %w", err)
	}
	answeredAt := cli.now()

	cli.answered++
	if result.Correct {
		cli.correct++
		_, _ = cli.green.Fprintln(cli.stdoutWriter, "Well done!")
	} else {
		_, _ = cli.red.Fprint(cli.stdoutWriter, "Correct answer: ")
		_, _ = fmt.Fprintln(cli.stdoutWriter, result.Expected)
		cli.printExplanation(ctx, task, result)
	}

	attempt := learning.NewAttempt(cli.sessionID, task, result, answeredAt.Sub(startTime), answeredAt)
	if err := cli.repository.Create(ctx, &attempt); err != nil {
		return fmt.Errorf("repository.Create() > %w", err)
	}
	return nil
}

// Score returns the number of correct and answered rounds.
func (cli *DrillCLI) Score() (int, int) {
	return cli.correct, cli.answered
}

func (cli *DrillCLI) printSummary() {
	if cli.answered == 0 {
		_, _ = fmt.Fprintln(cli.stdoutWriter, "Practice session ended.")
		return
	}
	_, _ = fmt.Fprintf(cli.stdoutWriter, "Practice session ended. Score: %d/%d (%.1f%%)\n",
		cli.correct, cli.answered, float64(cli.correct)/float64(cli.answered)*100)
}

func (cli *DrillCLI) printHint(ctx context.Context, verb string) {
	if cli.dictionary == nil {
		_, _ = fmt.Fprintln(cli.stdoutWriter, "No dictionary is configured.")
		return
	}
	response, err := cli.dictionary.Lookup(ctx, verb)
	if err != nil {
		slog.Default().Warn("failed to look up a verb", "verb", verb, "error", err)
		_, _ = fmt.Fprintf(cli.stdoutWriter, "No meaning found for %q.\n", verb)
		return
	}
	hint := response.Hint()
	if hint == "" {
		_, _ = fmt.Fprintf(cli.stdoutWriter, "No meaning found for %q.\n", verb)
		return
	}
	_, _ = cli.italic.Fprintf(cli.stdoutWriter, "%s: %s\n", verb, hint)
}

func (cli *DrillCLI) printExplanation(ctx context.Context, task practice.Task, result practice.Result) {
	if cli.explainer == nil {
		return
	}
	response, err := cli.explainer.ExplainMistake(ctx, inference.ExplainMistakeRequest{
		Pronoun:  string(task.Pronoun),
		Verb:     task.Verb,
		Tense:    string(task.Tense),
		Form:     string(task.Form),
		Expected: result.Expected,
		Given:    result.Given,
	})
	if err != nil {
		slog.Default().Warn("failed to explain a mistake", "task", task.String(), "error", err)
		return
	}
	_, _ = fmt.Fprintln(cli.stdoutWriter, response.Explanation)
	if response.Rule != "" {
		_, _ = cli.italic.Fprintf(cli.stdoutWriter, "Rule: %s\n", response.Rule)
	}
}
