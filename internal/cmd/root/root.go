// Package root provides the root command for the cssmx CLI.
package root

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/FeepingCreature/cssmx"
	"github.com/FeepingCreature/cssmx/internal/config"
	"github.com/FeepingCreature/cssmx/internal/version"
)

// NewCmdRoot creates the root command for cssmx.
func NewCmdRoot() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cssmx [file]",
		Short: "Expand CSS macros and flatten nested selectors",
		Long: `cssmx preprocesses CSS written with ¤-prefixed macro invocations and
nested selector blocks. Macros are expanded, the result is lexed into a
structural tree, nested rule sets are flattened, and plain CSS is written
out.

Reads from stdin when no file is given.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Version,
		RunE:          run,
	}

	cmd.SetVersionTemplate("cssmx version {{.Version}} (commit: " + version.Commit + ", built: " + version.Date + ")\n")

	cmd.Flags().StringP("output", "o", "", "write output to file instead of stdout")
	cmd.Flags().StringP("config", "c", "", "config file (default: ~/.config/cssmx/config.yml)")
	cmd.Flags().StringArray("set", nil, "seed a global variable as name=value (repeatable)")
	cmd.Flags().String("marker", "", "invocation marker character (default: ¤)")
	cmd.Flags().Bool("no-denest", false, "stop after macro expansion, keep nested selectors")
	cmd.Flags().BoolP("verbose", "v", false, "enable debug logging")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	log := zap.NewNop()
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		var err error
		if log, err = zap.NewDevelopment(); err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return fail(err)
	}

	exp := cssmx.New(log)
	denesting := cfg.DenestEnabled()
	if noDenest, _ := cmd.Flags().GetBool("no-denest"); noDenest {
		denesting = false
	}

	marker := cfg.Marker
	if flagMarker, _ := cmd.Flags().GetString("marker"); flagMarker != "" {
		marker = flagMarker
	}
	if marker != "" {
		if utf8.RuneCountInString(marker) != 1 {
			return fail(fmt.Errorf("marker must be a single character, got %q", marker))
		}
		r, _ := utf8.DecodeRuneInString(marker)
		exp.Marker = r
	}

	for name, value := range cfg.Variables {
		exp.DefineVariable(name, value)
	}
	sets, _ := cmd.Flags().GetStringArray("set")
	for _, s := range sets {
		name, value, ok := strings.Cut(s, "=")
		if !ok {
			return fail(fmt.Errorf("invalid --set %q, want name=value", s))
		}
		exp.DefineVariable(name, value)
	}

	source, err := readInput(args)
	if err != nil {
		return fail(err)
	}

	var result string
	if denesting {
		result, err = exp.ExpandAndDenest(source)
	} else {
		result, err = exp.Expand(source)
	}
	if err != nil {
		return fail(err)
	}
	if !strings.HasSuffix(result, "\n") {
		result += "\n"
	}

	if out, _ := cmd.Flags().GetString("output"); out != "" {
		return fail(os.WriteFile(out, []byte(result), 0o644))
	}
	_, err = io.WriteString(cmd.OutOrStdout(), result)
	return fail(err)
}

// loadConfig loads the file named by --config, or the default path when it
// exists. A missing default is not an error.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		return config.Load(path)
	}
	path := config.DefaultPath()
	if path == "" {
		return &config.Config{}, nil
	}
	if _, err := os.Stat(path); err != nil {
		return &config.Config{}, nil
	}
	return config.Load(path)
}

func readInput(args []string) (string, error) {
	if len(args) == 1 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// fail prints the error to stderr in red and passes it through, since the
// command silences cobra's own error reporting.
func fail(err error) error {
	if err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "cssmx: %v\n", err)
	}
	return err
}
