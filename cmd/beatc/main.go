// Command beatc compiles a single .beat source file to a native
// object file.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/beatlang/beatc/internal/codegen"
	"github.com/beatlang/beatc/internal/config"
	"github.com/beatlang/beatc/internal/diagnostics"
	"github.com/beatlang/beatc/internal/pipeline"
	"github.com/beatlang/beatc/internal/token"
	"github.com/beatlang/beatc/internal/utils"
)

// reservedWordsHelp renders config.Keywords as a comma-separated list
// for the CLI's long help text.
func reservedWordsHelp() string {
	words := make([]string, len(config.Keywords))
	for i, kw := range config.Keywords {
		words[i] = kw.Lexeme
	}
	return strings.Join(words, ", ")
}

var (
	flagOutput   string
	flagTarget   string
	flagOptLevel int
	flagPIC      bool
	flagVerbose  bool
)

func main() {
	root := &cobra.Command{
		Use:   "beatc <input" + config.SourceFileExt + ">",
		Short: "Compile a beat source file to a native object file",
		Long:  "Compile a beat source file to a native object file.\n\nReserved words: " + reservedWordsHelp(),
		Args:  cobra.ExactArgs(1),
		RunE:  run,
	}

	root.Flags().StringVarP(&flagOutput, "output", "o", "", "output object file path (default: input with .o)")
	root.Flags().StringVar(&flagTarget, "target", "", "target triple (default: host)")
	root.Flags().IntVarP(&flagOptLevel, "opt", "O", config.DefaultOptLevel, fmt.Sprintf("optimization level (0-%d)", config.MaxOptLevel))
	root.Flags().BoolVar(&flagPIC, "pic", false, "generate position-independent code")
	root.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "trace pipeline stages to stderr")
	root.Flags().BoolVar(&flagVerbose, "debug", false, "alias for --verbose")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	if flagVerbose {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.WarnLevel)
	}

	if flagOptLevel < 0 || flagOptLevel > config.MaxOptLevel {
		return fmt.Errorf("invalid optimization level %d (must be 0-%d)", flagOptLevel, config.MaxOptLevel)
	}

	inputPath := args[0]
	outputPath := flagOutput
	if outputPath == "" {
		outputPath = utils.DefaultObjectPath(inputPath)
	}

	log.Debugf("reading %s", inputPath)
	source, err := os.ReadFile(inputPath)
	if err != nil {
		diagnostics.Report(diagnostics.New(diagnostics.PhaseDriver, diagnostics.ErrD001, token.Span{}, err.Error()))
		os.Exit(1)
	}

	ctx := pipeline.NewContext(string(source), inputPath)

	log.Debug("running lexer -> parser -> analyzer pipeline")
	pl := pipeline.New(pipeline.Stages()...)
	ctx = pl.Run(ctx)
	if ctx.Err != nil {
		diagnostics.Report(ctx.Err)
		os.Exit(1)
	}

	log.Debugf("lowering %d decorated statement(s) to LLVM IR", len(ctx.Decorated))
	module, cerr := codegen.Compile(utils.ModuleName(inputPath), ctx.Decorated, ctx.Funcs)
	if cerr != nil {
		diagnostics.Report(cerr)
		os.Exit(1)
	}

	opts := codegen.ResolveEmitOptions(outputPath, flagTarget, flagOptLevel, flagPIC)
	log.Debugf("emitting object file %s (target=%q O%d pic=%v)", opts.Output, opts.Target, opts.OptLevel, opts.PIC)
	if cerr := codegen.Emit(module, opts, log); cerr != nil {
		diagnostics.Report(cerr)
		os.Exit(1)
	}

	return nil
}
