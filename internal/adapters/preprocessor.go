package adapters

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"xbuildenv/internal/ports"
	"xbuildenv/internal/shared"
)

// DefaultPreprocessCommand expands a descriptor; "-o <output> <input>" is
// appended to it.
var DefaultPreprocessCommand = []string{"elbe", "preprocess"}

type CommandPreprocessorAdapter struct {
	Command []string
}

func NewCommandPreprocessorAdapter(command []string) CommandPreprocessorAdapter {
	if len(command) == 0 {
		command = DefaultPreprocessCommand
	}
	return CommandPreprocessorAdapter{Command: command}
}

func (a CommandPreprocessorAdapter) Preprocess(ctx context.Context, path string) (ports.PreprocessedFile, error) {
	if len(a.Command) == 0 || strings.TrimSpace(a.Command[0]) == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("preprocess command is empty")
	}
	tmp, err := os.CreateTemp("", "xbuildenv-preproc-*.xml")
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create preprocess output").
			WithCause(err)
	}
	out := &preprocessedFile{path: tmp.Name()}
	if err := tmp.Close(); err != nil {
		_ = out.Close()
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create preprocess output").
			WithCause(err)
	}

	args := append(append([]string(nil), a.Command[1:]...), "-o", out.path, path)
	cmd := exec.CommandContext(ctx, a.Command[0], args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		_ = out.Close()
		code := errbuilder.CodeInternal
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code = errbuilder.CodeFailedPrecondition
		}
		return nil, errbuilder.New().
			WithCode(code).
			WithMsg(strings.Join(cmd.Args, " ")).
			WithCause(shared.CommandError(output, err))
	}
	log.Ctx(ctx).Debug().Str("path", path).Str("output", out.path).Msg("descriptor preprocessed")
	return out, nil
}

type preprocessedFile struct {
	path string
	once sync.Once
	err  error
}

func (f *preprocessedFile) Path() string {
	return f.path
}

func (f *preprocessedFile) Close() error {
	f.once.Do(func() {
		if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
			f.err = err
		}
	})
	return f.err
}

var _ ports.PreprocessorPort = CommandPreprocessorAdapter{}
