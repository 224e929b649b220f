package capture

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"
)

// AudioSource yields raw mono LINEAR16 audio.
type AudioSource interface {
	Open(ctx context.Context) (io.ReadCloser, error)
}

// CommandSource records audio by running an external program that writes
// raw PCM to stdout.
type CommandSource struct {
	Args []string
}

var _ AudioSource = (*CommandSource)(nil)

// DefaultRecordCommand is the recorder used when none is configured.
func DefaultRecordCommand(sampleRate int) []string {
	return []string{"arecord", "-q", "-t", "raw", "-f", "S16_LE", "-c", "1", "-r", strconv.Itoa(sampleRate)}
}

// NewCommandSource parses a command line. An empty line selects the
// default recorder at sampleRate.
func NewCommandSource(commandLine string, sampleRate int) *CommandSource {
	args := strings.Fields(commandLine)
	if len(args) == 0 {
		args = DefaultRecordCommand(sampleRate)
	}
	return &CommandSource{Args: args}
}

func (c *CommandSource) Open(ctx context.Context) (io.ReadCloser, error) {
	if len(c.Args) == 0 {
		return nil, fmt.Errorf("%w: no record command", ErrUnavailable)
	}
	path, err := exec.LookPath(c.Args[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	cmd := exec.CommandContext(ctx, path, c.Args[1:]...)
	out, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("record pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: start %s: %v", ErrUnavailable, c.Args[0], err)
	}
	return &commandReader{ReadCloser: out, cmd: cmd}, nil
}

type commandReader struct {
	io.ReadCloser
	cmd *exec.Cmd
}

func (r *commandReader) Close() error {
	if r.cmd.Process != nil {
		_ = r.cmd.Process.Kill()
	}
	_ = r.ReadCloser.Close()
	_ = r.cmd.Wait()
	return nil
}
