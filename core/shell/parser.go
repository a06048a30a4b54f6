package shell

import (
	"strconv"
	"strings"
)

// Tokens with special meaning on the input line.
const (
	inputRedirectOp  = "<"
	outputRedirectOp = ">"
	backgroundOp     = "&"
	commentPrefix    = "#"
	pidMarker        = "$$"
)

// Command is one parsed input line.
type Command struct {
	Args           []string
	InputPath      string
	OutputPath     string
	RedirectInput  bool
	RedirectOutput bool
	Background     bool
}

// Empty reports whether the line held no arguments at all.
func (c *Command) Empty() bool {
	return len(c.Args) == 0
}

// Comment reports whether the line is a comment.
func (c *Command) Comment() bool {
	return !c.Empty() && strings.HasPrefix(c.Args[0], commentPrefix)
}

// ExpandPID replaces every occurrence of the $$ marker in token with the
// decimal form of pid. Replacement is left to right and non-overlapping, so
// "$$$$" yields two concatenated pid strings and "$$$" yields the pid
// followed by a lone dollar sign.
func ExpandPID(token string, pid int) string {
	return strings.ReplaceAll(token, pidMarker, strconv.Itoa(pid))
}

// Tokenize splits a raw input line on runs of whitespace, dropping the
// trailing newline, and expands the pid marker in each token.
func Tokenize(line string, pid int) []string {
	tokens := strings.Fields(line)
	for i, tok := range tokens {
		tokens[i] = ExpandPID(tok, pid)
	}
	return tokens
}

// Parse consumes the expanded tokens of one line and produces a Command.
//
// The redirection operators use single token lookahead: the token after "<"
// becomes the input path and the token after ">" the output path; everything
// else is an argument. A trailing "&" argument requests background execution
// and is always removed, but only takes effect while foreground-only mode is
// off. Anywhere else "&" is an ordinary argument.
func Parse(line string, pid int, foregroundOnly bool) *Command {
	cmd := &Command{}

	var expectInputPath, expectOutputPath bool
	for _, tok := range Tokenize(line, pid) {
		switch {
		case expectInputPath:
			cmd.InputPath = tok
			expectInputPath = false
		case expectOutputPath:
			cmd.OutputPath = tok
			expectOutputPath = false
		case tok == inputRedirectOp:
			cmd.RedirectInput = true
			expectInputPath = true
		case tok == outputRedirectOp:
			cmd.RedirectOutput = true
			expectOutputPath = true
		default:
			cmd.Args = append(cmd.Args, tok)
		}
	}

	if n := len(cmd.Args); n > 0 && cmd.Args[n-1] == backgroundOp {
		cmd.Args = cmd.Args[:n-1]
		cmd.Background = !foregroundOnly
	}

	return cmd
}
