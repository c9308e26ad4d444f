package runner

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/aretw0/serology/pkg/domain"
)

// JSONHandler implements the IOHandler interface for structured JSON-Lines communication.
//
// Each Output writes one View object per line. Input accepts, per line, a
// command object ({"op":"select","selection":"positive"}), a JSON string
// ("p") or raw text (p). Invalid lines are answered with {"error": "..."}.
type JSONHandler struct {
	Reader  *bufio.Reader
	Writer  io.Writer
	Encoder *json.Encoder

	maxInputSize int
	mu           sync.Mutex
}

// JSONHandlerOption configures a JSONHandler.
type JSONHandlerOption func(*JSONHandler)

// WithJSONMaxInputSize overrides the sanitizer limit for this handler.
func WithJSONMaxInputSize(n int) JSONHandlerOption {
	return func(h *JSONHandler) {
		h.maxInputSize = n
	}
}

// NewJSONHandler creates a handler for JSON IO.
func NewJSONHandler(r io.Reader, w io.Writer, opts ...JSONHandlerOption) *JSONHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	h := &JSONHandler{
		Reader:  bufio.NewReader(r),
		Writer:  w,
		Encoder: json.NewEncoder(w),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *JSONHandler) encode(v any) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.Encoder.Encode(v)
}

// Output emits the view as a single JSON line.
func (h *JSONHandler) Output(ctx context.Context, view domain.View) error {
	return h.encode(view)
}

// Input reads lines until one decodes to a valid command.
func (h *JSONHandler) Input(ctx context.Context) (Command, error) {
	for {
		if err := ctx.Err(); err != nil {
			return Command{}, err
		}

		text, err := h.Reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || strings.TrimSpace(text) == "") {
			return Command{}, err
		}

		cmd, perr := h.decode(strings.TrimSpace(text))
		if perr == nil {
			return cmd, nil
		}
		if encErr := h.encode(map[string]string{"error": perr.Error()}); encErr != nil {
			return Command{}, encErr
		}
		if err != nil {
			return Command{}, err
		}
	}
}

func (h *JSONHandler) decode(text string) (Command, error) {
	clean, err := SanitizeInputLimit(text, h.maxInputSize)
	if err != nil {
		return Command{}, err
	}

	if strings.HasPrefix(clean, "{") {
		var cmd Command
		if err := json.Unmarshal([]byte(clean), &cmd); err != nil {
			return Command{}, err
		}
		return cmd, cmd.Validate()
	}

	var val string
	if err := json.Unmarshal([]byte(clean), &val); err == nil {
		clean = val
	}
	return ParseCommand(clean)
}

// SystemOutput emits {"system": msg}.
func (h *JSONHandler) SystemOutput(ctx context.Context, msg string) error {
	return h.encode(map[string]string{"system": msg})
}
