package main

import (
	"bytes"
	"embed"
	"flag"
	"fmt"
	"log"
	"os"
	"sync"
	"text/template"
)

//go:embed templates/*.txt
var helpFS embed.FS

var (
	helpOnce sync.Once
	helpTmpl *template.Template
)

func parseHelpTemplates() {
	helpTmpl = template.Must(template.New("").Funcs(map[string]any{
		"flags": func(fs *flag.FlagSet) []flagInfo {
			result := []flagInfo{}
			fs.VisitAll(func(f *flag.Flag) {
				result = append(result, flagInfo{f.Name, f.DefValue, f.Usage})
			})
			return result
		},
	}).ParseFS(helpFS, "templates/*.txt"))
}

type flagInfo struct {
	Name     string
	DefValue string
	Usage    string
}

type HelpData interface {
	Program() string
	Template() string
	FlagSet() *flag.FlagSet
}

type UsageError struct {
	of HelpData
}

func (e *UsageError) Error() string {
	help, err := e.renderHelp()
	if err != nil {
		return err.Error()
	}
	return help
}

func (e *UsageError) renderHelp() (string, error) {
	helpOnce.Do(parseHelpTemplates)
	var buf bytes.Buffer
	err := helpTmpl.ExecuteTemplate(&buf, e.of.Template(), e.of)
	if err != nil {
		log.Printf("error rendering help template: %v", err)
		return "", err
	}
	return buf.String(), nil
}

func usageFunc(h HelpData) func() {
	return func() {
		fmt.Fprintln(os.Stderr, (&UsageError{of: h}).Error())
	}
}

func (r *root) Template() string {
	return "root.txt"
}

func (b *boardCmd) Template() string {
	return "board.txt"
}

func (c *renderCmd) Template() string {
	return "render.txt"
}

func (i *interactiveCLI) Template() string {
	return "interactive.txt"
}

func (a *analyzeCmd) Template() string {
	return "analyze.txt"
}

func (c *configCmd) Template() string {
	return "config.txt"
}

func (v *versionCmd) Template() string {
	return "version.txt"
}

// helpCmd renders the usage text for a named command, or for the root
// when no topic is given.
type helpCmd struct {
	r     *root
	topic string
}

func parseHelpCmd(args []string, r *root) (*helpCmd, error) {
	h := &helpCmd{r: r}
	if len(args) > 0 {
		h.topic = args[0]
	}
	return h, nil
}

func (h *helpCmd) Run() error {
	var (
		data HelpData
		err  error
	)
	switch h.topic {
	case "":
		data = h.r
	case "board":
		data, err = parseBoardCmd(nil, h.r)
	case "render":
		data, err = parseRenderCmd(nil, h.r)
	case "interactive":
		data, err = parseInteractiveCmd(nil, h.r)
	case "analyze":
		data, err = parseAnalyzeCmd(nil, h.r)
	case "config":
		data, err = parseConfigCmd(nil, h.r)
	case "version":
		data = &versionCmd{r: h.r}
	default:
		return fmt.Errorf("unknown help topic %q", h.topic)
	}
	if err != nil {
		return err
	}
	fmt.Fprint(os.Stdout, (&UsageError{of: data}).Error())
	return nil
}
