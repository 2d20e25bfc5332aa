package cmd

import (
	"fmt"
	"log/slog"
	"maps"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/cmmoran/apimockgen/pkg/action/generate"
	"github.com/cmmoran/apimockgen/pkg/action/snapshot"
	"github.com/cmmoran/apimockgen/pkg/generator"
	"github.com/cmmoran/apimockgen/pkg/render"
)

const defaultManifest = "fixtures/manifest.yaml"

func init() {
	rootCmd.AddCommand(
		NewEnumCommand(),
		NewModelCommand(),
		NewUnionCommand(),
		NewTypeCommand(),
		NewResponseCommand(),
	)
}

// runFlags holds the flag values that are not plain configuration keys.
type runFlags struct {
	excludeFields   []string
	properties      []string
	manifest        string
	snapshotName    string
	snapshotVersion string
}

// flagKeys maps flag names onto the configuration keys they override.
var flagKeys = map[string]string{
	"schema":             "parser.in_file",
	"schema-format":      "parser.format",
	"exclude-deprecated": "parser.exclude_deprecated",
	"minimum":            "generate.minimum",
	"maximum":            "generate.maximum",
	"only-required":      "generate.only_required",
	"use-default":        "generate.use_default",
	"use-example":        "generate.use_example",
	"variant":            "generate.variant",
	"format":             "output.format",
	"package":            "output.package",
	"var-name":           "output.name",
	"output-directory":   "out_dir",
	"output-file":        "out_file",
	"seed":               "seed",
}

func NewEnumCommand() *cobra.Command {
	return newTargetCommand(&cobra.Command{
		Use:   "enum <name>",
		Short: "generate an enum value",
		Args:  cobra.ExactArgs(1),
	}, func(args []string) (generate.Target, error) {
		return generate.Target{Kind: generate.TargetEnum, Name: args[0]}, nil
	})
}

func NewModelCommand() *cobra.Command {
	return newTargetCommand(&cobra.Command{
		Use:   "model <name>",
		Short: "generate a model record",
		Long: `Generate a model record. Field values come from, in order: --set overrides,
declared examples (--use-example), declared defaults of optional fields (--use-default)
and finally random values. Optional fields are left out with --only-required.`,
		Args: cobra.ExactArgs(1),
	}, func(args []string) (generate.Target, error) {
		return generate.Target{Kind: generate.TargetModel, Name: args[0]}, nil
	})
}

func NewUnionCommand() *cobra.Command {
	return newTargetCommand(&cobra.Command{
		Use:   "union <name>",
		Short: "generate a union value",
		Long: `Generate a union value tagged with its discriminator. The variant is chosen
at random unless --variant names one of the union's types.`,
		Args: cobra.ExactArgs(1),
	}, func(args []string) (generate.Target, error) {
		return generate.Target{Kind: generate.TargetUnion, Name: args[0]}, nil
	})
}

func NewTypeCommand() *cobra.Command {
	return newTargetCommand(&cobra.Command{
		Use:     "type <expression>",
		Short:   "generate a value for a type expression",
		Example: `  apimockgen type '[pet]' --minimum 2 --maximum 5` + "\n" + `  apimockgen type 'map[uuid]'`,
		Args:    cobra.ExactArgs(1),
	}, func(args []string) (generate.Target, error) {
		return generate.Target{Kind: generate.TargetType, Name: args[0]}, nil
	})
}

func NewResponseCommand() *cobra.Command {
	var useDefault bool
	c := newTargetCommand(&cobra.Command{
		Use:   "response <method> <path> <code>",
		Short: "generate the body of an operation response",
		Long: `Generate the body declared for an operation response. A code without a declared
response is an error unless --default-response lets it fall back to the Default response.`,
		Example: `  apimockgen response GET /pets/:id 200` + "\n" + `  apimockgen response GET /pets/:id 503 --default-response`,
		Args:    cobra.ExactArgs(3),
	}, func(args []string) (generate.Target, error) {
		code, err := strconv.Atoi(args[2])
		if err != nil {
			return generate.Target{}, fmt.Errorf("invalid response code %q: %w", args[2], err)
		}
		return generate.Target{
			Kind:       generate.TargetResponse,
			Method:     args[0],
			Path:       args[1],
			Code:       code,
			UseDefault: useDefault,
		}, nil
	})
	c.Flags().BoolVar(&useDefault, "default-response", false, "answer undeclared codes with the Default response")
	return c
}

func newTargetCommand(c *cobra.Command, target func(args []string) (generate.Target, error)) *cobra.Command {
	rf := &runFlags{}
	addGenerateFlags(c, rf)

	// Flags are bound when the command runs so each command's own flags back
	// the shared configuration keys.
	c.PreRunE = func(c *cobra.Command, _ []string) error {
		return bindFlags(c)
	}
	c.RunE = func(c *cobra.Command, args []string) error {
		t, err := target(args)
		if err != nil {
			return err
		}
		return run(c, rf, t)
	}
	return c
}

func addGenerateFlags(c *cobra.Command, rf *runFlags) {
	f := c.Flags()
	f.StringP("schema", "i", "service.json", "apibuilder service description to load, \"-\" for stdin")
	f.String("schema-format", "", "service description format (json, yaml); inferred from the file extension when empty")
	f.BoolP("exclude-deprecated", "d", false, "exclude deprecated fields, enum values and union types")
	f.StringSliceVarP(&rf.excludeFields, "exclude-fields", "x", []string{}, "exclude model fields, ex: pet.status or status")

	f.Int("minimum", generator.DefaultMinimum, "minimum generated array length")
	f.Int("maximum", generator.DefaultMaximum, "maximum generated array length, capped at 1024")
	f.BoolP("only-required", "r", false, "omit optional fields")
	f.Bool("use-default", false, "use the declared default of optional fields")
	f.Bool("use-example", false, "use declared examples")
	f.String("variant", "", "union variant to generate, by type name")
	f.StringArrayVar(&rf.properties, "set", []string{}, "override a field value, ex: --set name=rex --set 'tags=[a, b]' (values are parsed as YAML)")
	f.Uint64("seed", 0, "random seed; a random seed is used and logged when unset")

	f.String("format", string(render.FormatJSON), "output format (json, yaml, go)")
	f.String("package", "", "package clause for go output; inferred from the output directory when empty")
	f.String("var-name", "", "variable name for go output; derived from the target when empty")
	f.StringP("output-directory", "o", "", "directory to write the fixture to; stdout when empty")
	f.StringP("output-file", "f", "", "fixture file name inside the output directory")

	f.StringVar(&rf.manifest, "manifest", defaultManifest, "snapshot manifest")
	f.StringVar(&rf.snapshotVersion, "snapshot-version", "", "record the fixture in the manifest under this version")
	f.StringVar(&rf.snapshotName, "snapshot-name", "", "fixture name recorded in the manifest; derived from the target when empty")
}

func bindFlags(c *cobra.Command) error {
	for name, key := range flagKeys {
		fl := c.Flags().Lookup(name)
		if fl == nil {
			continue
		}
		if err := viper.BindPFlag(key, fl); err != nil {
			return fmt.Errorf("bind flag %q: %w", name, err)
		}
	}
	return nil
}

// loadOptions merges configuration, environment and flags into run options.
func loadOptions(rf *runFlags) (*generate.Options, error) {
	opts := &generate.Options{}
	if err := viper.Unmarshal(opts); err != nil {
		return nil, fmt.Errorf("unmarshal options: %w", err)
	}
	opts.Parser.Normalize(rf.excludeFields...)

	if viper.IsSet("seed") {
		seed := viper.GetUint64("seed")
		opts.Seed = &seed
	}

	format, err := render.ParseFormat(string(opts.Render.Format))
	if err != nil {
		return nil, err
	}
	opts.Render.Format = format

	props, err := parseProperties(rf.properties)
	if err != nil {
		return nil, err
	}
	if len(props) > 0 {
		if opts.Generate.Properties == nil {
			opts.Generate.Properties = make(map[string]any, len(props))
		}
		maps.Copy(opts.Generate.Properties, props)
	}

	return opts, nil
}

// parseProperties parses name=value pairs. Values are YAML, so "name=rex",
// "age=3", "tags=[a, b]" and "owner=" (null) all work.
func parseProperties(pairs []string) (map[string]any, error) {
	props := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		name, raw, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid property %q, expected name=value", pair)
		}
		var v any
		if err := yaml.Unmarshal([]byte(raw), &v); err != nil {
			return nil, fmt.Errorf("invalid value for property %q: %w", name, err)
		}
		props[name] = v
	}
	return props, nil
}

func run(c *cobra.Command, rf *runFlags, target generate.Target) error {
	opts, err := loadOptions(rf)
	if err != nil {
		return err
	}

	if rf.snapshotVersion != "" {
		s, err := snapshot.Generate(opts, target, rf.manifest, rf.snapshotName, rf.snapshotVersion)
		if err != nil {
			return err
		}
		slog.With("name", s.Name, "version", s.Version, "file", s.File, "seed", s.Seed).Info("recorded snapshot")
		return nil
	}

	res, err := generate.Generate(opts, target, c.OutOrStdout())
	if err != nil {
		return err
	}
	if opts.Seed == nil {
		slog.With("target", target.String(), "seed", res.Seed).Info("generated with random seed")
	}
	return nil
}
