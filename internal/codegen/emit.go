package codegen

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/llir/llvm/ir"
	"github.com/sirupsen/logrus"

	"github.com/beatlang/beatc/internal/diagnostics"
	"github.com/beatlang/beatc/internal/token"
)

// EmitOptions configures object emission. Target/CPU/Features mirror
// inkwell's TargetTriple/get_host_cpu_name/get_host_cpu_features;
// OptLevel and PIC mirror OptimizationLevel and RelocMode.
type EmitOptions struct {
	Output   string
	Target   string // empty means the host triple
	CPU      string
	Features string
	OptLevel int // 0-3
	PIC      bool
}

// ResolveEmitOptions sets CPU to "native" when compiling for the host
// (Target empty) and leaves it empty when cross-compiling. Features is
// left empty in both cases; no host feature string is computed.
func ResolveEmitOptions(output, target string, optLevel int, pic bool) EmitOptions {
	opts := EmitOptions{Output: output, Target: target, OptLevel: optLevel, PIC: pic}
	if target == "" {
		opts.CPU = "native"
	}
	return opts
}

// Emit serializes m to LLVM IR text, prints it to stderr for
// inspection, writes it to a uuid-named temporary file, and invokes
// the system llc to assemble an object file at opts.Output. llir/llvm
// has no TargetMachine/object-writer of its own, so llc stands in for
// inkwell's write_object_file call.
func Emit(m *ir.Module, opts EmitOptions, log *logrus.Logger) *diagnostics.CompileError {
	irText := m.String()
	fmt.Fprintln(os.Stderr, irText)

	tmpPath := filepath.Join(os.TempDir(), "beatc-"+uuid.New().String()+".ll")
	if err := os.WriteFile(tmpPath, []byte(irText), 0o644); err != nil {
		return diagnostics.New(diagnostics.PhaseDriver, diagnostics.ErrD002, token.Span{}, err.Error())
	}
	defer os.Remove(tmpPath)

	args := []string{
		"-filetype=obj",
		"-O" + strconv.Itoa(opts.OptLevel),
		"-o", opts.Output,
	}
	if opts.Target != "" {
		args = append(args, "-mtriple="+opts.Target)
	}
	if opts.CPU != "" {
		args = append(args, "-mcpu="+opts.CPU)
	}
	if opts.Features != "" {
		args = append(args, "-mattr="+opts.Features)
	}
	if opts.PIC {
		args = append(args, "-relocation-model=pic")
	}
	args = append(args, tmpPath)

	cmd := exec.Command("llc", args...)
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return diagnostics.New(diagnostics.PhaseDriver, diagnostics.ErrD002, token.Span{}, err.Error())
	}

	if log != nil {
		if info, statErr := os.Stat(opts.Output); statErr == nil {
			log.Debugf("wrote object %s (%s)", opts.Output, humanize.Bytes(uint64(info.Size())))
		}
	}
	return nil
}
