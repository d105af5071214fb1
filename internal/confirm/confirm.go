// Package confirm asks the user to confirm destructive or disruptive
// operations through a registered Prompter.
package confirm

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

// ErrNoPrompter is returned when Confirm is called before a prompter is set.
var ErrNoPrompter = errors.New("confirm: no prompter registered")

// Type is the visual style of a dialog.
type Type string

// Dialog types.
const (
	TypeDanger  Type = "danger"
	TypeWarning Type = "warning"
	TypeInfo    Type = "info"
)

// Dialog is a yes/no question.
type Dialog struct {
	Title       string `json:"title"`
	Message     string `json:"message"`
	ConfirmText string `json:"confirmText"`
	CancelText  string `json:"cancelText"`
	Type        Type   `json:"type"`
}

// Prompter presents a dialog and returns the answer.
type Prompter interface {
	Prompt(ctx context.Context, d Dialog) (bool, error)
}

// PrompterFunc adapts a function to Prompter.
type PrompterFunc func(ctx context.Context, d Dialog) (bool, error)

// Prompt calls f.
func (f PrompterFunc) Prompt(ctx context.Context, d Dialog) (bool, error) {
	return f(ctx, d)
}

// Auto answers every dialog with answer.
func Auto(answer bool) Prompter {
	return PrompterFunc(func(ctx context.Context, _ Dialog) (bool, error) {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		return answer, nil
	})
}

type line struct {
	text string
	err  error
}

type terminal struct {
	mu    sync.Mutex
	once  sync.Once
	in    *bufio.Reader
	out   io.Writer
	lines chan line
}

// Terminal prompts on out and reads a line from in. "y" and "yes" (any case)
// confirm; anything else, including EOF, declines.
func Terminal(in io.Reader, out io.Writer) Prompter {
	return &terminal{in: bufio.NewReader(in), out: out, lines: make(chan line)}
}

// read feeds lines until the reader fails, then closes the channel.
// It is the only goroutine reading from in.
func (t *terminal) read() {
	defer close(t.lines)
	for {
		text, err := t.in.ReadString('\n')
		t.lines <- line{text: text, err: err}
		if err != nil {
			return
		}
	}
}

func (t *terminal) Prompt(ctx context.Context, d Dialog) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, err := fmt.Fprintf(t.out, "%s\n%s\n[%s/%s] (y/N): ", d.Title, d.Message, d.ConfirmText, d.CancelText); err != nil {
		return false, fmt.Errorf("confirm: write prompt: %w", err)
	}
	t.once.Do(func() { go t.read() })

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case l, ok := <-t.lines:
		if !ok {
			return false, nil
		}
		if l.err != nil && !errors.Is(l.err, io.EOF) {
			return false, fmt.Errorf("confirm: read answer: %w", l.err)
		}
		switch strings.ToLower(strings.TrimSpace(l.text)) {
		case "y", "yes":
			return true, nil
		}
		return false, nil
	}
}

// Service routes dialogs to the registered prompter.
type Service struct {
	mu       sync.RWMutex
	prompter Prompter
}

// New returns a Service using p, which may be nil until SetPrompter is called.
func New(p Prompter) *Service {
	return &Service{prompter: p}
}

// SetPrompter replaces the prompter.
func (s *Service) SetPrompter(p Prompter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prompter = p
}

// Confirm shows d and reports the answer.
func (s *Service) Confirm(ctx context.Context, d Dialog) (bool, error) {
	s.mu.RLock()
	p := s.prompter
	s.mu.RUnlock()

	if p == nil {
		return false, ErrNoPrompter
	}
	return p.Prompt(ctx, d)
}

// ConfirmDelete asks before deleting item. An empty item reads "this item".
func (s *Service) ConfirmDelete(ctx context.Context, item string) (bool, error) {
	if item == "" {
		item = "this item"
	}
	return s.Confirm(ctx, DeleteDialog(item))
}

// ConfirmUnsavedChanges asks before discarding unsaved edits.
func (s *Service) ConfirmUnsavedChanges(ctx context.Context) (bool, error) {
	return s.Confirm(ctx, Dialog{
		Title:       "Unsaved Changes",
		Message:     "You have unsaved changes. Do you want to leave without saving?",
		ConfirmText: "Leave",
		CancelText:  "Stay",
		Type:        TypeWarning,
	})
}

// ConfirmAction asks a generic question.
func (s *Service) ConfirmAction(ctx context.Context, title, message string) (bool, error) {
	return s.Confirm(ctx, Dialog{
		Title:       title,
		Message:     message,
		ConfirmText: "Continue",
		CancelText:  "Cancel",
		Type:        TypeInfo,
	})
}

// DeleteDialog is the dialog shown by ConfirmDelete.
func DeleteDialog(item string) Dialog {
	return Dialog{
		Title:       "Confirm Deletion",
		Message:     fmt.Sprintf("Are you sure you want to delete %s? This action cannot be undone.", item),
		ConfirmText: "Delete",
		CancelText:  "Cancel",
		Type:        TypeDanger,
	}
}
