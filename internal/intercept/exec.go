package intercept

import (
	"os/exec"
	"regexp"
	"strings"

	"github.com/bb1nfosec/bheeshma/pkg/signal"
)

// Cmd wraps *exec.Cmd so Run/Output/CombinedOutput/Start each forward
// unmodified and, once the wrapped call has returned, emit a ShellExec
// signal carrying a sanitized command template (spec.md §4.3's
// "Child-process hook").
type Cmd struct {
	*exec.Cmd
	template string
}

// Command constructs a monitored *exec.Cmd, matching exec.Command's
// signature so it can be used as a drop-in constructor at call sites that
// want interception.
func Command(name string, args ...string) *Cmd {
	c := exec.Command(name, args...)
	template := name
	if len(args) > 0 {
		template = name + " " + strings.Join(args, " ")
	}
	return &Cmd{Cmd: c, template: template}
}

func (c *Cmd) Run() error {
	err := c.Cmd.Run()
	emitExec(c.template, "run")
	return err
}

func (c *Cmd) Output() ([]byte, error) {
	out, err := c.Cmd.Output()
	emitExec(c.template, "output")
	return out, err
}

func (c *Cmd) CombinedOutput() ([]byte, error) {
	out, err := c.Cmd.CombinedOutput()
	emitExec(c.template, "combinedOutput")
	return out, err
}

func (c *Cmd) Start() error {
	err := c.Cmd.Start()
	emitExec(c.template, "start")
	return err
}

func emitExec(template, operation string) {
	emit(signal.ShellExec, signal.Metadata{
		Command:   sanitizeCommand(template),
		Operation: operation,
	}, 2, cfgExec())
}

const maxCommandLen = 200

var (
	flagValuePattern = regexp.MustCompile(`(--(?:password|token|api-key|secret))(=|\s+)(\S+)`)
	envAssignPattern = regexp.MustCompile(`(?i)(\w*_(?:KEY|TOKEN|SECRET))=(\S+)`)
)

// sanitizeCommand applies spec.md §4.3's sanitizer: truncate to 200 chars
// with "…[TRUNCATED]", redact --password/--token/--api-key/--secret
// values, and redact <WORD>_KEY=/<WORD>_TOKEN=/<WORD>_SECRET= assignments.
func sanitizeCommand(s string) string {
	s = flagValuePattern.ReplaceAllString(s, "$1$2***")
	s = envAssignPattern.ReplaceAllStringFunc(s, func(m string) string {
		parts := envAssignPattern.FindStringSubmatch(m)
		return parts[1] + "=***"
	})
	if len(s) > maxCommandLen {
		s = s[:maxCommandLen] + "…[TRUNCATED]"
	}
	return s
}
