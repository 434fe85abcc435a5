package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// GetSimpleText prints a prompt to w and reads a single line of input from reader.
// The trailing newline is trimmed. If EOF occurs after some input was read,
// the partial line is returned.
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetSecret prints prompt to w and reads a value from the terminal without
// echo.
func GetSecret(w io.Writer, prompt string) (string, error) {
	if _, err := fmt.Fprint(w, prompt+": "); err != nil {
		return "", err
	}
	b, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

// shareArgs is a parsed "share" command line.
type shareArgs struct {
	values map[string]string
	id     string
	name   string
}

// parseShareArgs reads key=value pairs plus optional "-name N" and "-id X".
func parseShareArgs(args []string) (shareArgs, error) {
	out := shareArgs{values: make(map[string]string)}
	for i := 0; i < len(args); i++ {
		switch arg := args[i]; arg {
		case "-name", "-id":
			if i+1 >= len(args) {
				return shareArgs{}, fmt.Errorf("%s needs a value", arg)
			}
			i++
			if arg == "-name" {
				out.name = args[i]
			} else {
				out.id = args[i]
			}
		default:
			key, value, ok := strings.Cut(arg, "=")
			key = strings.TrimSpace(key)
			if !ok || key == "" {
				return shareArgs{}, fmt.Errorf("expected key=value, got %q", arg)
			}
			out.values[key] = strings.TrimSpace(value)
		}
	}
	if len(out.values) == 0 {
		return shareArgs{}, errors.New("at least one key=value is required")
	}
	return out, nil
}
