package runner

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/serology/pkg/domain"
	"github.com/muesli/termenv"
)

// TextHandler implements the human console interface.
type TextHandler struct {
	Reader   *bufio.Reader
	Writer   io.Writer
	Renderer ContentRenderer
	Title    string

	out          *termenv.Output
	maxInputSize int

	inputChan chan inputResult
	startOnce sync.Once
}

type inputResult struct {
	text string
	err  error
}

// TextHandlerOption defines configuration for TextHandler.
type TextHandlerOption func(*TextHandler)

// WithTextHandlerRenderer configures the markdown renderer for conclusion reports.
func WithTextHandlerRenderer(renderer ContentRenderer) TextHandlerOption {
	return func(h *TextHandler) {
		h.Renderer = renderer
	}
}

// WithTextHandlerTitle sets the heading of the conclusion report.
func WithTextHandlerTitle(title string) TextHandlerOption {
	return func(h *TextHandler) {
		h.Title = title
	}
}

// WithMaxInputSize overrides the sanitizer limit for this handler.
func WithMaxInputSize(n int) TextHandlerOption {
	return func(h *TextHandler) {
		h.maxInputSize = n
	}
}

// WithProfile forces a color profile (termenv.Ascii disables styling).
func WithProfile(p termenv.Profile) TextHandlerOption {
	return func(h *TextHandler) {
		h.out = termenv.NewOutput(h.Writer, termenv.WithProfile(p))
	}
}

// NewTextHandler creates a handler for standard text IO.
func NewTextHandler(r io.Reader, w io.Writer, opts ...TextHandlerOption) *TextHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	h := &TextHandler{
		Reader: bufio.NewReader(r),
		Writer: w,
		out:    termenv.NewOutput(w),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *TextHandler) initPump() {
	h.startOnce.Do(func() {
		h.inputChan = make(chan inputResult)
		go h.pump()
	})
}

func (h *TextHandler) pump() {
	for {
		text, err := h.Reader.ReadString('\n')

		// If we got text (even with EOF), send it
		if text != "" {
			h.inputChan <- inputResult{text: text}
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				close(h.inputChan)
				return
			}
			h.inputChan <- inputResult{err: err}
			// Backoff for non-fatal errors to prevent CPU spikes on persistent failure
			time.Sleep(50 * time.Millisecond)
		}
	}
}

// Output prints the question with selection markers, or the conclusion report.
func (h *TextHandler) Output(ctx context.Context, view domain.View) error {
	if view.IsConclusion() {
		return h.outputConclusion(view)
	}

	arrow := h.out.String("→").Foreground(h.out.Color("#818cf8"))
	if view.Direction == domain.Backward {
		arrow = h.out.String("←").Foreground(h.out.Color("#f472b6"))
	}
	label := h.out.String(view.Label + "?").Bold()
	fmt.Fprintf(h.Writer, "\n%s [%s] %s\n", arrow, view.NodeID, label)

	fmt.Fprintf(h.Writer, "  %s   %s\n",
		h.marker(view, domain.Positive, "#22c55e"),
		h.marker(view, domain.Negative, "#ef4444"),
	)

	hints := []string{"p/n select"}
	if view.CanAdvance() {
		hints = append(hints, "enter next")
	}
	if view.CanGoBack {
		hints = append(hints, "b back")
	}
	hints = append(hints, "r reset", "q quit")
	fmt.Fprintln(h.Writer, h.out.String("  "+strings.Join(hints, " | ")).Faint())
	return nil
}

func (h *TextHandler) marker(view domain.View, sel domain.Selection, color string) string {
	has := view.HasPositive
	if sel == domain.Negative {
		has = view.HasNegative
	}
	if !has {
		return h.out.String(fmt.Sprintf("[ ] %s", sel)).Faint().String()
	}
	if view.Selection == sel {
		return h.out.String(fmt.Sprintf("[x] %s", sel)).Foreground(h.out.Color(color)).Bold().String()
	}
	return fmt.Sprintf("[ ] %s", sel)
}

func (h *TextHandler) outputConclusion(view domain.View) error {
	report := ConclusionMarkdown(h.Title, view)
	output := report
	if h.Renderer != nil {
		if rendered, err := h.Renderer(report); err == nil {
			output = rendered
		}
	}
	fmt.Fprintln(h.Writer)
	fmt.Fprintln(h.Writer, strings.TrimSpace(output))
	fmt.Fprintln(h.Writer, h.out.String("  b back | r reset | q quit").Faint())
	return nil
}

// Input reads the next line and parses it. Invalid lines are reported and re-prompted.
func (h *TextHandler) Input(ctx context.Context) (Command, error) {
	h.initPump()

	for {
		select {
		case <-ctx.Done():
			return Command{}, ctx.Err()
		default:
			fmt.Fprint(h.Writer, "> ")
		}

		select {
		case <-ctx.Done():
			return Command{}, ctx.Err()
		case res, ok := <-h.inputChan:
			if !ok {
				return Command{}, io.EOF
			}
			if res.err != nil {
				return Command{}, res.err
			}

			clean, err := SanitizeInputLimit(strings.TrimSpace(res.text), h.maxInputSize)
			if err != nil {
				fmt.Fprintf(h.Writer, "Error: %v. Please try again.\n", err)
				continue
			}
			cmd, err := ParseCommand(clean)
			if err != nil {
				fmt.Fprintf(h.Writer, "Error: %v. Please try again.\n", err)
				continue
			}
			return cmd, nil
		}
	}
}

// SystemOutput prints a prefixed status line.
func (h *TextHandler) SystemOutput(ctx context.Context, msg string) error {
	fmt.Fprintf(h.Writer, "[System] %s\n", msg)
	return nil
}
