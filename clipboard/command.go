package clipboard

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"
)

// Command copies and pastes through external programs
type Command struct {
	CopyArgs  []string
	PasteArgs []string
}

// candidates in detection order, copy and paste pairs
var candidates = []Command{
	// macOS
	{CopyArgs: []string{"pbcopy"}, PasteArgs: []string{"pbpaste"}},
	// Wayland
	{CopyArgs: []string{"wl-copy"}, PasteArgs: []string{"wl-paste", "--no-newline"}},
	// X11
	{CopyArgs: []string{"xclip", "-selection", "clipboard"}, PasteArgs: []string{"xclip", "-selection", "clipboard", "-o"}},
	{CopyArgs: []string{"xsel", "--clipboard", "--input"}, PasteArgs: []string{"xsel", "--clipboard", "--output"}},
	// WSL
	{CopyArgs: []string{"clip.exe"}, PasteArgs: []string{"powershell.exe", "-NoProfile", "-Command", "Get-Clipboard"}},
}

// lookPath is replaced in tests
var lookPath = exec.LookPath

// DetectCommand returns the first candidate whose copy program is installed
func DetectCommand() (*Command, error) {
	for _, c := range candidates {
		if _, err := lookPath(c.CopyArgs[0]); err == nil {
			cmd := c
			return &cmd, nil
		}
	}
	return nil, fmt.Errorf("command: %w", ErrNoBackend)
}

func (c *Command) Name() string {
	return BackendCommand + ":" + c.CopyArgs[0]
}

func (c *Command) Write(text string) error {
	cmd := exec.Command(c.CopyArgs[0], c.CopyArgs[1:]...)
	cmd.Stdin = strings.NewReader(text)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", c.CopyArgs[0], err, bytes.TrimSpace(out))
	}
	return nil
}

func (c *Command) Read() (string, error) {
	if len(c.PasteArgs) == 0 {
		return "", ErrWriteOnly
	}
	out, err := exec.Command(c.PasteArgs[0], c.PasteArgs[1:]...).Output()
	if err != nil {
		return "", fmt.Errorf("%s: %w", c.PasteArgs[0], err)
	}
	text := strings.TrimRight(string(out), "\r\n")
	if text == "" {
		return "", ErrEmpty
	}
	return text, nil
}
