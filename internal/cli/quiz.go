package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/tonguetip/tonguetip/internal/quiz"
)

// QuizRunner plays one interactive quiz session in the terminal.
type QuizRunner struct {
	generator   *quiz.Generator
	stdinReader *bufio.Reader
	writer      io.Writer
	bold        *color.Color
	green       *color.Color
	red         *color.Color
}

func NewQuizRunner(generator *quiz.Generator) *QuizRunner {
	return &QuizRunner{
		generator:   generator,
		stdinReader: bufio.NewReader(os.Stdin),
		writer:      os.Stdout,
		bold:        color.New(color.Bold),
		green:       color.New(color.FgGreen),
		red:         color.New(color.FgRed),
	}
}

func (r *QuizRunner) Run(ctx context.Context) error {
	questions, err := r.generator.Generate(ctx)
	if err != nil {
		if errors.Is(err, quiz.ErrNotEnoughHistory) {
			fmt.Fprintf(r.writer, "Not enough words yet. Accept at least %d suggestions and try again.\n", quiz.RequiredWords)
			return nil
		}
		return fmt.Errorf("generator.Generate() > %w", err)
	}

	session := quiz.NewSession(questions)
	if session.State() == quiz.StateUnavailable {
		fmt.Fprintln(r.writer, "No questions could be built from your history right now.")
		return nil
	}

	for {
		question, ok := session.Current()
		if !ok {
			break
		}
		index, total := session.Progress()

		if _, err := r.bold.Fprintf(r.writer, "\nQuestion %d of %d: %s\n", index+1, total, question.Header); err != nil {
			return fmt.Errorf("bold.Fprintf > %w", err)
		}
		for i, option := range question.Options {
			fmt.Fprintf(r.writer, "  %d. %s\n", i+1, option)
		}
		fmt.Fprintln(r.writer, "Your answer (number, or enter to pass):")

		answer, err := r.readAnswer(question.Options)
		if err != nil {
			return err
		}

		if session.Answer(answer) {
			r.green.Fprintln(r.writer, "Correct!")
		} else {
			r.red.Fprintf(r.writer, "Wrong. The answer was: %s\n", question.Answer)
		}
	}

	_, total := session.Progress()
	if _, err := r.bold.Fprintf(r.writer, "\nYou scored %d out of %d.\n", session.Score(), total); err != nil {
		return fmt.Errorf("bold.Fprintf > %w", err)
	}
	for _, result := range session.Results() {
		if result.Correct {
			continue
		}
		fmt.Fprintf(r.writer, "  %s -> you answered %q, correct was %q\n",
			result.Question.Header, result.Answer, result.Question.Answer)
	}
	return nil
}

// readAnswer maps a typed option number onto the option text. Anything that
// is not a valid number passes the question with an empty answer.
func (r *QuizRunner) readAnswer(options []string) (string, error) {
	line, err := r.stdinReader.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("stdinReader.ReadString > %w", err)
	}
	index, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || index < 1 || index > len(options) {
		return "", nil
	}
	return options[index-1], nil
}
