// Command verity is the analytic core of the Verity proof editor, exposed as
// a CLI: batch-parse a theory's formulas and eliminate working variables
// from interactively built proofs.
package main

import (
	"fmt"
	"os"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/verity-lang/verity/core/theory"
	"github.com/verity-lang/verity/runtime/batch"
	"github.com/verity-lang/verity/runtime/elim"
	"github.com/verity-lang/verity/runtime/parser"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "verity",
		Short:         "Parse and normalize proofs of an axiomatic formal-proof language",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(parseCmd(), resolveCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func parseCmd() *cobra.Command {
	var (
		sync    bool
		watch   bool
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "parse <theory.yaml>",
		Short: "Batch-parse every labeled formula of a theory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if err := runParse(cmd, path, sync, verbose); err != nil {
				return err
			}
			if watch {
				return watchAndReparse(cmd, path, sync, verbose)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&sync, "sync", false, "Run the batch parse in-process instead of on a worker")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Re-parse whenever the theory file changes")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print per-formula progress")
	return cmd
}

func runParse(cmd *cobra.Command, path string, sync, verbose bool) error {
	th, err := theory.Load(path)
	if err != nil {
		return err
	}

	rep := &printReporter{cmd: cmd, verbose: verbose}
	var trees int
	if sync {
		trees = len(batch.ParseTheorySync(th, rep))
	} else {
		trees = len(batch.ParseTheory(th, rep))
	}

	entries := len(th.ParsableFormulas())
	cmd.Printf("%s: %d statements, %d parsable, %d trees built\n", th.Name, th.Len(), entries, trees)
	if trees < entries {
		cmd.Printf("%d formulas did not parse\n", entries-trees)
	}
	return nil
}

// watchAndReparse re-runs the batch parse whenever the theory file is
// rewritten. Editors replace files with rename+create, so both event kinds
// trigger a reload.
func watchAndReparse(cmd *cobra.Command, path string, sync, verbose bool) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer func() { _ = w.Close() }()

	if err := w.Add(path); err != nil {
		return fmt.Errorf("watching %s: %w", path, err)
	}
	cmd.Printf("watching %s\n", path)

	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if err := runParse(cmd, path, sync, verbose); err != nil {
				cmd.PrintErrf("reload failed: %v\n", err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			cmd.PrintErrf("watch error: %v\n", err)
		}
	}
}

func resolveCmd() *cobra.Command {
	var checkOnly bool

	cmd := &cobra.Command{
		Use:   "resolve <theory.yaml> <proof.yaml>",
		Short: "Substitute working variables in a proof with unused theory variables",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, args[0], args[1], checkOnly)
		},
	}

	cmd.Flags().BoolVar(&checkOnly, "check", false, "Build the substitution without applying it")
	return cmd
}

func runResolve(cmd *cobra.Command, theoryPath, proofPath string, checkOnly bool) error {
	th, err := theory.Load(theoryPath)
	if err != nil {
		return err
	}
	p, err := theory.LoadProof(proofPath, th)
	if err != nil {
		return err
	}

	// The proof gets its own grammar session, seeded with the proof's
	// working-variable registry.
	parser.ParseSteps(p, th.Grammar(p.WorkingVars))

	var res *elim.Result
	if checkOnly {
		res = elim.Check(p)
	} else {
		res, err = elim.Apply(p, &stepRewriter{}, nil)
		if err != nil {
			return err
		}
	}

	cmd.Printf("%s: %s\n", p.Theorem, res.Outcome)
	for _, ident := range res.Substitution.Idents() {
		node, _ := res.Substitution.Node(ident)
		cmd.Printf("  %s -> %s\n", ident, node.String())
	}
	for _, d := range res.Diagnostics {
		cmd.Printf("  %s %d:%d %s [%s]\n", d.Severity, d.Range.Start.Line, d.Range.Start.Column, d.Message, d.Code)
	}
	if !checkOnly && !res.Substitution.Empty() {
		for _, st := range p.Steps {
			if st.Tree != nil {
				cmd.Printf("  %s: %s\n", st.Ref, st.Formula)
			}
		}
	}
	return nil
}

type printReporter struct {
	cmd     *cobra.Command
	verbose bool
}

func (r *printReporter) Progress(index, count int) {
	if r.verbose {
		r.cmd.Printf("parsing %d/%d\n", index+1, count)
	}
}

func (r *printReporter) Log(text string) {
	r.cmd.Println(text)
}
