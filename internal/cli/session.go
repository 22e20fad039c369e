// Package cli runs the interactive recommendation dialogue.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/okian/tixroi/internal/domain/model"
	"github.com/okian/tixroi/pkg/logger"
)

// Dialogue strings.
const (
	Prompt       = "Enter Event ID (or 'exit' to quit): "
	Goodbye      = "Goodbye!"
	InvalidInput = "Invalid input. Please enter a valid Event ID."
	Heading      = "💡 Investment Recommendation:"
	exitCommand  = "exit"
)

// Recommender answers one event query.
type Recommender interface {
	Recommend(ctx context.Context, eventID int) (model.Recommendation, error)
}

// Session reads one command per line and writes the answers.
type Session struct {
	advisor Recommender
	logger  logger.Logger
}

// Option applies a configuration option to the Session.
type Option func(*Session)

// WithLogger sets a custom logger for the session.
func WithLogger(l logger.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewSession creates a session over advisor.
func NewSession(advisor Recommender, opts ...Option) *Session {
	s := &Session{advisor: advisor}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("cli")
	}
	return s
}

// Run loops until exit, end of input or ctx cancellation. Query failures are
// printed and the loop continues; only I/O errors end it with an error.
func (s *Session) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := io.WriteString(out, Prompt); err != nil {
			return fmt.Errorf("write prompt: %w", err)
		}
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			_, err := fmt.Fprintln(out, "\n"+Goodbye)
			return err
		}

		line := strings.TrimSpace(scanner.Text())
		if strings.EqualFold(line, exitCommand) {
			_, err := fmt.Fprintln(out, Goodbye)
			return err
		}
		if err := s.handle(ctx, line, out); err != nil {
			return err
		}
	}
}

func (s *Session) handle(ctx context.Context, line string, out io.Writer) error {
	id, ok := parseID(line)
	if !ok {
		_, err := fmt.Fprintf(out, "%s\n\n", InvalidInput)
		return err
	}

	rec, err := s.advisor.Recommend(ctx, id)
	if err != nil {
		s.logger.Debug(ctx, "query failed", logger.EventID(id), logger.Error(err))
		_, werr := fmt.Fprintf(out, "%s\n\n", err)
		return werr
	}
	return Render(out, rec)
}

// parseID accepts only a run of ASCII digits that fits an int.
func parseID(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	id, err := strconv.Atoi(s)
	return id, err == nil
}

// Render writes a recommendation as a labelled listing.
func Render(out io.Writer, rec model.Recommendation) error {
	var b strings.Builder
	b.WriteString("\n" + Heading + "\n")
	field := func(label, value string) {
		fmt.Fprintf(&b, "%s: %s\n", label, value)
	}
	field("Event Name", rec.EventName)
	field("Recommendation", string(rec.Recommendation))
	field("Expected Roi", formatROI(rec.ExpectedROI))
	field("Risk Level", string(rec.RiskLevel))
	if rec.SuggestedHoldingPeriod != "" {
		field("Suggested Holding Period", rec.SuggestedHoldingPeriod)
	}
	field("Confidence Score", strconv.FormatFloat(rec.ConfidenceScore, 'f', -1, 64))
	b.WriteString("\n")

	_, err := io.WriteString(out, b.String())
	return err
}

func formatROI(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return decimal.NewFromFloat(v).StringFixed(2)
}
