package main

import (
	"flag"
	"fmt"
	"strings"
)

type versionCmd struct{ r *root }

func (v *versionCmd) Program() string {
	return v.r.Program()
}

func (v *versionCmd) FlagSet() *flag.FlagSet {
	return nil
}

func (v *versionCmd) Run() error {
	parts := []string{fmt.Sprintf("%s version %s", v.r.program, version)}
	if strings.TrimSpace(commit) != "" {
		parts = append(parts, fmt.Sprintf("commit %s", commit))
	}
	if strings.TrimSpace(date) != "" {
		parts = append(parts, fmt.Sprintf("built %s", date))
	}
	fmt.Println(strings.Join(parts, ", "))
	return nil
}
