package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/reqy/internal/editor"
	"github.com/thoreinstein/reqy/internal/errors"
	"github.com/thoreinstein/reqy/internal/paths"
	"github.com/thoreinstein/reqy/internal/report"
	"github.com/thoreinstein/reqy/internal/schemafile"
	"github.com/thoreinstein/reqy/internal/translate"
	"github.com/thoreinstein/reqy/pkg/fileutil"
	"github.com/thoreinstein/reqy/pkg/reqy"
)

var (
	schemaShowJSON   bool
	schemaConvertTo  string
	schemaConvertOut string
)

func init() {
	schemaShowCmd.Flags().BoolVar(&schemaShowJSON, "json", false,
		"output the canonical schema as JSON")
	schemaConvertCmd.Flags().StringVar(&schemaConvertTo, "to", "",
		"target format: yaml, toml")
	schemaConvertCmd.Flags().StringVarP(&schemaConvertOut, "output", "o", "",
		"write to this file instead of stdout")

	schemaCmd.AddCommand(schemaShowCmd)
	schemaCmd.AddCommand(schemaCheckCmd)
	schemaCmd.AddCommand(schemaListCmd)
	schemaCmd.AddCommand(schemaConvertCmd)
	schemaCmd.AddCommand(schemaEditCmd)
	rootCmd.AddCommand(schemaCmd)
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Inspect and manage schemas",
	Long: `Inspect and manage schema documents.

A schema argument is either a path to a YAML, JSON or TOML file, or the
name of a schema stored in the schema directory (see "reqy config show").`,
}

var schemaShowCmd = &cobra.Command{
	Use:   "show <schema>",
	Short: "Show the canonical form of a schema",
	Long: `Compile and preprocess a schema, then print every field with the
validator and level it resolves to.`,
	Example: `  reqy schema show person.yaml
  reqy schema show blog-post --json`,
	Args: cobra.ExactArgs(1),
	RunE: runSchemaShow,
}

var schemaCheckCmd = &cobra.Command{
	Use:   "check <schema>...",
	Short: "Check that schemas compile",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSchemaCheck,
}

var schemaListCmd = &cobra.Command{
	Use:   "list",
	Short: "List schemas in the schema directory",
	Args:  cobra.NoArgs,
	RunE:  runSchemaList,
}

var schemaConvertCmd = &cobra.Command{
	Use:   "convert <schema>",
	Short: "Convert a schema between YAML and TOML",
	Long: `Convert a schema document between YAML (or JSON) and TOML.

TOML tables are unordered, so converting to TOML and back sorts fields by
name.`,
	Example: `  reqy schema convert person.yaml --to toml -o person.toml`,
	Args:    cobra.ExactArgs(1),
	RunE:    runSchemaConvert,
}

var schemaEditCmd = &cobra.Command{
	Use:   "edit <schema>",
	Short: "Open a schema in $EDITOR",
	Long: `Open a schema in your editor and check that it still compiles
afterwards. Uses $REQY_EDITOR, $EDITOR or $VISUAL.`,
	Args: cobra.ExactArgs(1),
	RunE: runSchemaEdit,
}

// compileSchema resolves and compiles a schema argument with the configured
// default level.
func compileSchema(arg string) (string, reqy.Schema, error) {
	path, err := paths.ResolveSchema(arg, cfg.SchemaDir)
	if err != nil {
		return "", nil, errors.NewUserError(err, "")
	}
	compiler, err := schemafile.NewCompiler(reqy.New(reqy.WithDefaultLevel(cfg.Level())))
	if err != nil {
		return "", nil, err
	}
	schema, err := compiler.CompileFile(path)
	if err != nil {
		return path, nil, errors.NewUserError(err, "")
	}
	return path, schema, nil
}

func runSchemaShow(cmd *cobra.Command, args []string) error {
	_, schema, err := compileSchema(args[0])
	if err != nil {
		return err
	}
	if err := reqy.New(reqy.WithDefaultLevel(cfg.Level())).Preprocess(schema); err != nil {
		return errors.NewUserError(err, "")
	}

	tree := report.SchemaTree(schema)
	if schemaShowJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(tree), "encoding JSON")
	}
	report.WriteSchemaText(cmd.OutOrStdout(), tree)
	return nil
}

func runSchemaCheck(cmd *cobra.Command, args []string) error {
	var failed []error
	for _, arg := range args {
		path, _, err := compileSchema(arg)
		if err != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "✗ %s: %v\n", arg, err)
			failed = append(failed, err)
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ %s\n", path)
	}
	if len(failed) > 0 {
		return errors.NewUserError(errors.Wrapf(errors.ErrValidationFailed, "%d schema(s) failed to compile", len(failed)), "")
	}
	return nil
}

func runSchemaList(cmd *cobra.Command, _ []string) error {
	files, err := paths.ListSchemas(cfg.SchemaDir)
	if os.IsNotExist(err) {
		fmt.Fprintf(cmd.OutOrStdout(), "No schemas found in %s\n", cfg.SchemaDir)
		return nil
	}
	if err != nil {
		return errors.NewSystemError(errors.Wrap(err, "reading schema directory"), "")
	}
	if len(files) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No schemas found in %s\n", cfg.SchemaDir)
		return nil
	}
	for _, f := range files {
		name := strings.TrimSuffix(filepath.Base(f), filepath.Ext(f))
		fmt.Fprintf(cmd.OutOrStdout(), "%-24s %s\n", name, f)
	}
	return nil
}

func runSchemaConvert(cmd *cobra.Command, args []string) error {
	path, err := paths.ResolveSchema(args[0], cfg.SchemaDir)
	if err != nil {
		return errors.NewUserError(err, "")
	}
	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		return errors.NewSystemError(errors.Wrapf(err, "reading %s", path), "")
	}

	fromTOML := strings.EqualFold(filepath.Ext(path), ".toml")
	var out []byte
	switch strings.ToLower(schemaConvertTo) {
	case "toml":
		if fromTOML {
			out = data
			break
		}
		out, err = translate.YAMLToTOML(data)
	case "yaml", "yml":
		if !fromTOML {
			out = data
			break
		}
		out, err = translate.TOMLToYAML(data)
	default:
		return errors.NewUserError(errors.Wrapf(errors.ErrUnsupportedFormat, "--to %q", schemaConvertTo),
			"Use --to yaml or --to toml")
	}
	if err != nil {
		return errors.NewUserError(err, "")
	}

	if schemaConvertOut == "" {
		_, err = cmd.OutOrStdout().Write(out)
		return errors.Wrap(err, "writing output")
	}
	if err := fileutil.AtomicWriteFile(schemaConvertOut, out, 0o644); err != nil {
		return errors.NewSystemError(err, "")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", schemaConvertOut)
	return nil
}

func runSchemaEdit(cmd *cobra.Command, args []string) error {
	path, err := paths.ResolveSchema(args[0], cfg.SchemaDir)
	if err != nil {
		return errors.NewUserError(err, "")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Location: %s\n", path)
	if err := editor.Open(cmd.Context(), path); err != nil {
		return errors.NewSystemError(err, "")
	}
	if _, _, err := compileSchema(path); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "✓ schema compiles")
	return nil
}
