package main

import (
	"flag"
	"strings"
)

// commandList collects repeated -e flags in order.
type commandList []string

func (c *commandList) String() string {
	return strings.Join(*c, "; ")
}

func (c *commandList) Set(v string) error {
	*c = append(*c, v)
	return nil
}

// interactiveCLI wraps the interactive session with flag handling, so the
// same commands can also run in immediate mode with -e.
type interactiveCLI struct {
	*interactiveCmd

	fs *flag.FlagSet

	execs commandList
}

func parseInteractiveCmd(args []string, r *root) (*interactiveCLI, error) {
	fs := flag.NewFlagSet("interactive", flag.ExitOnError)
	cli := &interactiveCLI{interactiveCmd: newInteractiveCmd(r), fs: fs}
	fs.Usage = usageFunc(cli)
	fs.Var(&cli.execs, "e", "execute an interactive command in immediate mode (may be repeated)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return cli, nil
}

func (c *interactiveCLI) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *interactiveCLI) Program() string {
	return c.r.Program()
}

func (c *interactiveCLI) Run() error {
	if len(c.execs) > 0 {
		for _, cmd := range c.execs {
			done, err := c.executeLine(cmd)
			if err != nil {
				return err
			}
			if done {
				break
			}
		}
		c.waitOutcomes()
		return nil
	}

	return c.interactiveCmd.Run()
}
