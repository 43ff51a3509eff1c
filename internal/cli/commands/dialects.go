package commands

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/sqlfront/internal/cli/config"
	"github.com/leapstack-labs/sqlfront/pkg/dialect"
	"github.com/spf13/cobra"
)

// NewDialectsCommand creates the dialects command and its subcommands.
func NewDialectsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "dialects",
		Aliases: []string{"dialect"},
		Short:   "List the registered SQL dialects",
		Long: `List the dialects the parser knows, with their aliases, identifier quoting,
parameter style and grammar size. Use "dialects show" for the enabled lexical
and grammar features of one dialect and "dialects keywords" for its keyword
table.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDialects(cmd)
		},
	}
	cmd.AddCommand(newDialectShowCommand())
	cmd.AddCommand(newDialectKeywordsCommand())
	return cmd
}

// dialectInfo is the structured form of a dialect summary.
type dialectInfo struct {
	Name        string   `json:"name" yaml:"name"`
	Aliases     []string `json:"aliases" yaml:"aliases"`
	Quote       string   `json:"quote" yaml:"quote"`
	Placeholder string   `json:"placeholder" yaml:"placeholder"`
	Statements  []string `json:"statements" yaml:"statements"`
	Keywords    int      `json:"keywords" yaml:"keywords"`
	Lexical     []string `json:"lexical,omitempty" yaml:"lexical,omitempty"`
	Features    []string `json:"features,omitempty" yaml:"features,omitempty"`
}

func newDialectInfo(d *dialect.Dialect) dialectInfo {
	aliases := d.Aliases
	if aliases == nil {
		aliases = []string{}
	}
	return dialectInfo{
		Name:        d.GetName(),
		Aliases:     aliases,
		Quote:       d.QuoteIdentifier("x"),
		Placeholder: d.FormatPlaceholder(1),
		Statements:  d.StatementKeywords(),
		Keywords:    len(d.Keywords()),
		Lexical:     enabledFlags(d.Lexical),
		Features:    enabledFlags(d.Features),
	}
}

// enabledFlags lists the names of the true bool fields of a struct.
func enabledFlags(v any) []string {
	rv := reflect.ValueOf(v)
	var out []string
	for i := range rv.NumField() {
		if f := rv.Field(i); f.Kind() == reflect.Bool && f.Bool() {
			out = append(out, rv.Type().Field(i).Name)
		}
	}
	return out
}

func runDialects(cmd *cobra.Command) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	r := cc.Renderer

	var infos []dialectInfo
	for _, name := range dialect.List() {
		d, _ := dialect.Get(name)
		infos = append(infos, newDialectInfo(d))
	}
	if r.IsStructured() {
		return r.Structured(infos)
	}

	rows := make([][]string, 0, len(infos))
	for _, info := range infos {
		name := info.Name
		if strings.EqualFold(name, cc.Dialect.GetName()) {
			name += " *"
		}
		rows = append(rows, []string{
			name,
			strings.Join(info.Aliases, ", "),
			info.Quote,
			info.Placeholder,
			strconv.Itoa(len(info.Statements)),
			strconv.Itoa(info.Keywords),
		})
	}
	r.Header(1, fmt.Sprintf("Dialects (%d registered)", len(infos)))
	r.Table([]string{"Name", "Aliases", "Quoting", "Parameters", "Statements", "Keywords"}, rows)
	r.Muted("* selected (--dialect " + config.FromContext(cmd.Context()).Dialect + ")")
	return nil
}

func newDialectShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show [dialect]",
		Short: "Show the features of a dialect",
		Args:  cobra.MaximumNArgs(1),
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return dialect.List(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, d, err := dialectArg(cmd, args)
			if err != nil {
				return err
			}
			info := newDialectInfo(d)
			r := cc.Renderer
			if r.IsStructured() {
				return r.Structured(info)
			}

			r.Header(1, info.Name)
			r.StatusLine("Aliases", orNone(strings.Join(info.Aliases, ", ")))
			r.StatusLine("Quoting", info.Quote)
			r.StatusLine("Parameters", info.Placeholder)
			r.StatusLine("Lexical", orNone(strings.Join(info.Lexical, ", ")))
			r.StatusLine("Grammar", orNone(strings.Join(info.Features, ", ")))
			r.StatusLine("Statements", strings.Join(info.Statements, " "))

			counts := keywordClassCounts(d)
			rows := make([][]string, 0, len(counts))
			for _, c := range counts {
				rows = append(rows, []string{classTitle(c.class), strconv.Itoa(c.count)})
			}
			r.Println()
			r.Table([]string{"Keyword class", "Count"}, rows)
			return nil
		},
	}
}

func newDialectKeywordsCommand() *cobra.Command {
	var class string
	cmd := &cobra.Command{
		Use:   "keywords [dialect]",
		Short: "List the keywords of a dialect with their class",
		Long: `List the keyword table of a dialect. The class says where a keyword may
also be used as an identifier: reserved words never, non-reserved words
everywhere, and the ambiguous classes everywhere except the positions their
name excludes.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, d, err := dialectArg(cmd, args)
			if err != nil {
				return err
			}

			type keywordOutput struct {
				Word  string `json:"word" yaml:"word"`
				Class string `json:"class" yaml:"class"`
			}
			var (
				out  []keywordOutput
				rows [][]string
			)
			for _, kw := range d.Keywords() {
				if class != "" && !strings.EqualFold(kw.Class.String(), class) {
					continue
				}
				out = append(out, keywordOutput{Word: kw.Word, Class: kw.Class.String()})
				rows = append(rows, []string{kw.Word, classTitle(kw.Class)})
			}

			r := cc.Renderer
			if r.IsStructured() {
				return r.Structured(out)
			}
			r.Header(1, fmt.Sprintf("%s keywords (%d)", d.GetName(), len(rows)))
			r.Table([]string{"Keyword", "Class"}, rows)
			return nil
		},
	}
	cmd.Flags().StringVar(&class, "class", "", `Only list one class, e.g. "reserved" or "ambiguous labels"`)
	_ = cmd.RegisterFlagCompletionFunc("class", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return keywordClassNames(), cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

// dialectArg resolves the dialect named by the first argument, defaulting to
// the configured one.
func dialectArg(cmd *cobra.Command, args []string) (*CommandContext, *dialect.Dialect, error) {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return nil, nil, err
	}
	if len(args) == 0 {
		return cc, cc.Dialect, nil
	}
	d, err := dialect.Resolve(args[0])
	if err != nil {
		return nil, nil, err
	}
	return cc, d, nil
}

type classCount struct {
	class dialect.KeywordClass
	count int
}

func keywordClassCounts(d *dialect.Dialect) []classCount {
	var counts []classCount
	for c := dialect.Reserved; c <= dialect.AmbiguousSystemVariables; c++ {
		counts = append(counts, classCount{class: c})
	}
	for _, kw := range d.Keywords() {
		if int(kw.Class) < len(counts) {
			counts[kw.Class].count++
		}
	}
	return counts
}

func keywordClassNames() []string {
	var names []string
	for c := dialect.Reserved; c <= dialect.AmbiguousSystemVariables; c++ {
		names = append(names, c.String())
	}
	return names
}

var titleCaser = cases.Title(language.English)

func classTitle(c dialect.KeywordClass) string {
	return titleCaser.String(c.String())
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
