package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"image/png"
	"os"

	"github.com/example/inkboard/internal/judge"
)

// pickJudge selects the analysis backend; tests swap it out.
var pickJudge = judge.Pick

// analyzeCmd sends an existing PNG file to the analysis backend and prints
// the verdict.
type analyzeCmd struct {
	*root
	fs   *flag.FlagSet
	file string
}

func (a *analyzeCmd) FlagSet() *flag.FlagSet {
	return a.fs
}

func parseAnalyzeCmd(args []string, r *root) (*analyzeCmd, error) {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	a := &analyzeCmd{root: r, fs: fs}
	fs.StringVar(&a.file, "file", "", "PNG file to analyze")
	fs.Usage = usageFunc(a)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *analyzeCmd) Run() error {
	if a.file == "" {
		return &UsageError{of: a}
	}
	data, err := os.ReadFile(a.file)
	if err != nil {
		return err
	}
	if _, err := png.DecodeConfig(bytes.NewReader(data)); err != nil {
		return fmt.Errorf("%s: not a PNG: %w", a.file, err)
	}
	j, err := pickJudge(a.root.judgeCredentials())
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), judge.RequestTimeout)
	defer cancel()
	verdict, err := j.Analyze(ctx, data)
	if err != nil {
		return fmt.Errorf("analyze %s (%s): %w", a.file, j.Name(), err)
	}
	fmt.Fprintln(os.Stdout, verdict.Message())
	return nil
}
