// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/deptofdefense/blobvfs/pkg/log"
	"github.com/deptofdefense/blobvfs/pkg/vfs"
)

const (
	ShellPrompt = "blobvfs> "
)

const shellHelp = `Commands:
cat <file>             Displays the contents of a file.
cd [folder]            Changes current folder.
cp <src> <dest>        Copies a file or folder.
help                   Shows this message.
ls [-R] [path]         Lists contents of a file or folder.
pwd                    Displays current folder.
rm [-r] <path>         Deletes a file or folder.
stat <path>            Displays the type, size, and last modified time of a file.
touch <path>           Sets the last-modified time of a file, creating it if needed.
exit                   Exits this program.
quit                   Exits this program.
`

// Shell runs commands read line by line relative to a current folder.
// A failed command is reported and the shell continues with the next line.
type Shell struct {
	manager *vfs.Manager
	logger  *log.SimpleLogger
	home    vfs.FileObject
	cwd     vfs.FileObject
	out     io.Writer
}

func NewShell(manager *vfs.Manager, logger *log.SimpleLogger, cwd vfs.FileObject, out io.Writer) *Shell {
	return &Shell{
		manager: manager,
		logger:  logger,
		home:    cwd,
		cwd:     cwd,
		out:     out,
	}
}

// Cwd returns the current folder.
func (s *Shell) Cwd() vfs.FileObject {
	return s.cwd
}

// Run executes every line read from in until the input ends or an exit command is read.
func (s *Shell) Run(ctx context.Context, in io.Reader) error {
	defer func() {
		_ = s.cwd.Close()
	}()
	scanner := bufio.NewScanner(in)
	for {
		_, _ = fmt.Fprint(s.out, ShellPrompt)
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		exit, err := s.Execute(ctx, line)
		if err != nil {
			_ = s.logger.Log("Command failed", map[string]interface{}{
				"line":  line,
				"cwd":   s.cwd.Name().URI(),
				"error": err,
			})
			_, _ = fmt.Fprintf(s.out, "error: %s\n", err)
		}
		if exit {
			return nil
		}
	}
	return scanner.Err()
}

func (s *Shell) resolve(ctx context.Context, ref string) (vfs.FileObject, error) {
	return s.manager.ResolveFrom(ctx, s.cwd, ref)
}

func splitFlag(args []string, flag string) (bool, []string) {
	if len(args) > 0 && args[0] == flag {
		return true, args[1:]
	}
	return false, args
}

// Execute runs a single command line.  Returns true if the shell should exit.
func (s *Shell) Execute(ctx context.Context, line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	command, args := fields[0], fields[1:]
	switch command {
	case "exit", "quit":
		return true, nil
	case "help":
		_, _ = fmt.Fprint(s.out, shellHelp)
		return false, nil
	case "pwd":
		_, _ = fmt.Fprintln(s.out, s.cwd.Name().URI())
		return false, nil
	case "cd":
		return false, s.cd(ctx, args)
	case "ls":
		recursive, args := splitFlag(args, "-R")
		return false, s.withFile(ctx, command, args, 0, func(f vfs.FileObject) error {
			return listFiles(ctx, s.out, f, recursive)
		})
	case "cat":
		return false, s.withFile(ctx, command, args, 1, func(f vfs.FileObject) error {
			return catFile(ctx, s.out, f)
		})
	case "rm":
		recursive, args := splitFlag(args, "-r")
		return false, s.withFile(ctx, command, args, 1, func(f vfs.FileObject) error {
			_, err := removeFile(ctx, f, recursive)
			return err
		})
	case "stat":
		return false, s.withFile(ctx, command, args, 1, func(f vfs.FileObject) error {
			return statFile(ctx, s.out, f)
		})
	case "touch":
		return false, s.withFile(ctx, command, args, 1, func(f vfs.FileObject) error {
			return touchFile(ctx, f)
		})
	case "cp":
		return false, s.cp(ctx, args)
	}
	return false, fmt.Errorf("unknown command %q, try help", command)
}

// withFile resolves the single argument, or the current folder if the argument is optional and missing.
func (s *Shell) withFile(ctx context.Context, command string, args []string, required int, f func(f vfs.FileObject) error) error {
	if len(args) < required || len(args) > 1 {
		return fmt.Errorf("%s expects %d argument, found %d", command, 1, len(args))
	}
	if len(args) == 0 {
		return f(s.cwd)
	}
	file, err := s.resolve(ctx, args[0])
	if err != nil {
		return err
	}
	defer file.Close()
	return f(file)
}

func (s *Shell) cd(ctx context.Context, args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("cd expects at most 1 argument, found %d", len(args))
	}
	var next vfs.FileObject
	if len(args) == 0 {
		next = s.home
	} else {
		f, err := s.resolve(ctx, args[0])
		if err != nil {
			return err
		}
		next = f
	}
	t, err := next.Type(ctx)
	if err != nil {
		return err
	}
	if t != vfs.Folder {
		return fmt.Errorf("%q: %w", next.Name().URI(), vfs.ErrNotFolder)
	}
	s.cwd = next
	return nil
}

func (s *Shell) cp(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("cp expects 2 arguments, found %d", len(args))
	}
	src, err := s.resolve(ctx, args[0])
	if err != nil {
		return err
	}
	defer src.Close()
	dst, err := s.resolve(ctx, args[1])
	if err != nil {
		return err
	}
	defer dst.Close()
	return copyFile(ctx, src, dst)
}
