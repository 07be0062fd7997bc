package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Noodieknoodie/AI-HELPER/internal/session"
	"github.com/Noodieknoodie/AI-HELPER/internal/usage"
)

var (
	sendFile             string
	sendParams           []string
	sendAPIKey           string
	sendSaveKey          bool
	sendExtendedThinking bool
	sendThinkingBudget   int
	sendThinking         bool
	sendReasoningEffort  string
	sendOut              string
)

// sendCmd sends one prompt and prints the reply.
var sendCmd = &cobra.Command{
	Use:   "send [prompt]",
	Short: "Send a prompt to the active provider",
	Long: `Send a prompt to the active provider and model and print the reply.

The prompt is taken from the arguments or from --file ("-" reads stdin).
Progress and the token summary go to stderr so the reply can be piped.
Mode flags that the selected model does not support are reported and
ignored.`,
	Example: `  aihelp send "Explain this stack trace" -f trace.txt
  aihelp send -p openai -m o3-mini --reasoning-effort high "Plan the refactor"
  aihelp send -m claude-3-7-sonnet-20250219 --extended-thinking --thinking-budget 32000 -f - < notes.md`,
	RunE: runSend,
}

func init() {
	f := sendCmd.Flags()
	f.StringVarP(&sendFile, "file", "f", "", "read the prompt from a file (- for stdin)")
	f.StringArrayVar(&sendParams, "param", nil, "generation parameter as key=value (repeatable)")
	f.StringVar(&sendAPIKey, "api-key", "", "API key for this call instead of the stored one")
	f.BoolVar(&sendSaveKey, "save-key", false, "store --api-key for the provider after the call")
	f.BoolVar(&sendExtendedThinking, "extended-thinking", false, "enable Anthropic extended thinking")
	f.IntVar(&sendThinkingBudget, "thinking-budget", 0, "extended thinking token budget")
	f.BoolVar(&sendThinking, "thinking", false, "enable Gemini thinking")
	f.StringVar(&sendReasoningEffort, "reasoning-effort", "", "OpenAI reasoning effort: low, medium or high")
	f.StringVarP(&sendOut, "out", "o", "", "write the reply to a file instead of stdout")
}

func runSend(cmd *cobra.Command, args []string) error {
	prompt, err := readPrompt(cmd, args, sendFile)
	if err != nil {
		return err
	}
	params, err := parseParams(sendParams)
	if err != nil {
		return err
	}

	var opts []session.Option
	if sendAPIKey != "" {
		opts = append(opts, session.WithAPIKey(sendAPIKey))
	}
	s := env.newSession(opts...)
	for key, value := range params {
		s.SetParameter(key, value)
	}
	applyModes(cmd, s)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	stderr := cmd.ErrOrStderr()
	bar := newProgressLine(stderr, quiet)
	reply := s.Send(ctx, prompt, bar.update)
	bar.finish()
	env.writeMetrics()

	if strings.HasPrefix(reply, "Error") {
		return exitError(ExitRequestFailed, color.New(color.FgRed).Sprint(reply))
	}

	if sendSaveKey && sendAPIKey != "" {
		if !env.store.Save(s.Provider(), sendAPIKey) {
			_, _ = fmt.Fprintln(stderr, color.YellowString("warning: could not store the API key"))
		}
	}

	if err := writeReply(cmd.OutOrStdout(), sendOut, reply); err != nil {
		return err
	}
	if !quiet {
		printUsage(stderr, s)
	}
	return nil
}

// applyModes forwards the mode flags the user set. Unsupported modes are
// reported and otherwise ignored.
func applyModes(cmd *cobra.Command, s *session.Session) {
	warn := func(format string, args ...any) {
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), color.YellowString("warning: "+format, args...))
	}
	flags := cmd.Flags()

	if flags.Changed("extended-thinking") || flags.Changed("thinking-budget") {
		var budget []int
		if flags.Changed("thinking-budget") {
			budget = append(budget, sendThinkingBudget)
		}
		enabled := sendExtendedThinking || !flags.Changed("extended-thinking")
		if !s.SetExtendedThinking(enabled, budget...) {
			warn("%s does not support extended thinking", s.Model())
		}
	}
	if flags.Changed("thinking") && !s.SetThinking(sendThinking) {
		warn("%s does not support thinking", s.Model())
	}
	if flags.Changed("reasoning-effort") && !s.SetReasoningEffort(sendReasoningEffort) {
		warn("reasoning effort %q is not valid for %s", sendReasoningEffort, s.Model())
	}
}

func writeReply(stdout io.Writer, path, reply string) error {
	if path == "" {
		_, err := fmt.Fprintln(stdout, reply)
		return err
	}
	if err := os.WriteFile(path, []byte(reply), 0o644); err != nil {
		return fmt.Errorf("write reply: %w", err)
	}
	return nil
}

func printUsage(w io.Writer, s *session.Session) {
	u := s.LastUsage()
	if u == nil {
		return
	}
	dim := color.New(color.Faint)
	line := fmt.Sprintf("%s/%s tokens: %d in, %d out, %d total", s.Provider(), s.Model(),
		u.PromptTokens, u.CompletionTokens, u.TotalTokens)
	if info, ok := s.ModelInfo(); ok && usage.Priced(info) {
		line += ", cost " + usage.CostFor(info, *u).String()
	}
	_, _ = dim.Fprintln(w, line)
}

// progressLine redraws a single status line on stderr.
type progressLine struct {
	mu     sync.Mutex
	w      io.Writer
	silent bool
	drawn  bool
}

func newProgressLine(w io.Writer, silent bool) *progressLine {
	return &progressLine{w: w, silent: silent}
}

func (p *progressLine) update(percent int) {
	if p.silent {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	_, _ = fmt.Fprintf(p.w, "\r%s %3d%%", color.CyanString("sending"), percent)
	p.drawn = true
}

func (p *progressLine) finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.drawn {
		_, _ = fmt.Fprintln(p.w)
	}
}
