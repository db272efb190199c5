// Package schemac is a thin cobra wrapper around the core compiler. It
// contains no business logic: every subcommand parses flags, calls into
// compiler.Compile/compiler.Plan, and writes the returned artifacts.
package schemac

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/relschema/schemac/compiler"
	"github.com/relschema/schemac/config"
	"github.com/relschema/schemac/core/platform"
	"github.com/relschema/schemac/snapshot"
)

const (
	identifierStrategyFlag = "identifier-strategy"
	enableRLSFlag          = "enable-rls"
	lockTimeoutFlag        = "lock-timeout-ms"
	statementTimeoutFlag   = "statement-timeout-ms"
	dialectFlag            = "dialect"
	snapshotFlag           = "snapshot"
	outDirFlag             = "out-dir"
)

var rootFlags = map[string]cobraflags.Flag{
	identifierStrategyFlag: &cobraflags.StringFlag{
		Name:  identifierStrategyFlag,
		Value: string(config.Preserve),
		Usage: "Identifier strategy: preserve, snake_case, lower, upper",
	},
	dialectFlag: &cobraflags.StringFlag{
		Name:  dialectFlag,
		Value: platform.Postgres,
		Usage: "Target SQL dialect; only postgres (and its aliases pgx/postgresql) is supported",
	},
	enableRLSFlag: &cobraflags.BoolFlag{
		Name:  enableRLSFlag,
		Value: true,
		Usage: "Emit row-level security blocks for annotated tables",
	},
	lockTimeoutFlag: &cobraflags.IntFlag{
		Name:  lockTimeoutFlag,
		Value: 5000,
		Usage: "lock_timeout directive (ms) passed to the migration executor",
	},
	statementTimeoutFlag: &cobraflags.IntFlag{
		Name:  statementTimeoutFlag,
		Value: 30000,
		Usage: "statement_timeout directive (ms) passed to the migration executor",
	},
}

var compileFlags = map[string]cobraflags.Flag{
	outDirFlag: &cobraflags.StringFlag{
		Name:  outDirFlag,
		Value: "./",
		Usage: "Directory to write schema.sql and snapshot.yaml into",
	},
}

var planFlags = map[string]cobraflags.Flag{
	snapshotFlag: &cobraflags.StringFlag{
		Name:  snapshotFlag,
		Value: "./snapshot.yaml",
		Usage: "Path to the prior snapshot; omitted or missing means bootstrap",
	},
	outDirFlag: &cobraflags.StringFlag{
		Name:  outDirFlag,
		Value: "./",
		Usage: "Directory to write 001_expand.sql and 002_validate.sql into",
	},
}

// NewRootCommand builds the schemac cobra command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "schemac",
		Short: "Compile a typed schema IDL into PostgreSQL DDL and migration plans",
	}
	cobraflags.RegisterMap(root, rootFlags)
	viper.BindPFlag(identifierStrategyFlag, root.PersistentFlags().Lookup(identifierStrategyFlag)) //nolint:errcheck
	viper.BindPFlag(enableRLSFlag, root.PersistentFlags().Lookup(enableRLSFlag))                     //nolint:errcheck
	viper.BindPFlag(lockTimeoutFlag, root.PersistentFlags().Lookup(lockTimeoutFlag))                 //nolint:errcheck
	viper.BindPFlag(statementTimeoutFlag, root.PersistentFlags().Lookup(statementTimeoutFlag))       //nolint:errcheck
	viper.BindPFlag(dialectFlag, root.PersistentFlags().Lookup(dialectFlag))                         //nolint:errcheck
	viper.SetEnvPrefix("SCHEMAC")
	viper.AutomaticEnv()

	root.PersistentPreRunE = func(_ *cobra.Command, _ []string) error {
		if platform.NormalizeDialect(viper.GetString(dialectFlag)) == "" {
			return fmt.Errorf("unsupported dialect %q: schemac only targets %s", viper.GetString(dialectFlag), platform.Postgres)
		}
		return nil
	}

	root.AddCommand(newCompileCommand())
	root.AddCommand(newPlanCommand())
	return root
}

func newCompileCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compile <file.idl>",
		Short: "Compile an IDL source file into schema.sql and a snapshot",
		Args:  cobra.ExactArgs(1),
		RunE:  runCompile,
	}
	cobraflags.RegisterMap(cmd, compileFlags)
	return cmd
}

func newPlanCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan <file.idl>",
		Short: "Diff an IDL source file against a prior snapshot and emit a migration plan",
		Args:  cobra.ExactArgs(1),
		RunE:  runPlan,
	}
	cobraflags.RegisterMap(cmd, planFlags)
	return cmd
}

func loadConfig() *config.Config {
	return config.Default().
		WithIdentifierStrategy(config.IdentifierStrategy(viper.GetString(identifierStrategyFlag))).
		WithRLSEnabled(viper.GetBool(enableRLSFlag)).
		WithTimeouts(viper.GetInt(lockTimeoutFlag), viper.GetInt(statementTimeoutFlag))
}

func runCompile(_ *cobra.Command, args []string) error {
	source, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading source: %w", err)
	}

	result, err := compiler.Compile(string(source), loadConfig())
	if err != nil {
		return err
	}

	outDir := compileFlags[outDirFlag].GetString()
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating out dir: %w", err)
	}

	if err := os.WriteFile(filepath.Join(outDir, "schema.sql"), []byte(result.DDL), 0o644); err != nil {
		return fmt.Errorf("writing schema.sql: %w", err)
	}

	snapBytes, err := snapshot.Marshal(result.Snapshot)
	if err != nil {
		return fmt.Errorf("marshalling snapshot: %w", err)
	}
	if err := os.WriteFile(filepath.Join(outDir, "snapshot.yaml"), snapBytes, 0o644); err != nil {
		return fmt.Errorf("writing snapshot.yaml: %w", err)
	}

	for _, w := range result.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}
	fmt.Printf("wrote %s\n", filepath.Join(outDir, "schema.sql"))
	fmt.Printf("wrote %s\n", filepath.Join(outDir, "snapshot.yaml"))
	return nil
}

func runPlan(_ *cobra.Command, args []string) error {
	source, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading source: %w", err)
	}

	cfg := loadConfig()
	result, err := compiler.Compile(string(source), cfg)
	if err != nil {
		return err
	}

	var prior *snapshot.Document
	snapPath := planFlags[snapshotFlag].GetString()
	if data, err := os.ReadFile(snapPath); err == nil {
		prior, err = snapshot.Parse(data)
		if err != nil {
			return fmt.Errorf("parsing prior snapshot: %w", err)
		}
	}

	migrationPlan, err := compiler.Plan(result.Schema, prior)
	if err != nil {
		return fmt.Errorf("planning: %w", err)
	}

	outDir := planFlags[outDirFlag].GetString()
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating out dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(outDir, "001_expand.sql"), []byte(migrationPlan.ExpandSQL()), 0o644); err != nil {
		return fmt.Errorf("writing 001_expand.sql: %w", err)
	}
	if err := os.WriteFile(filepath.Join(outDir, "002_validate.sql"), []byte(migrationPlan.ValidateSQL()), 0o644); err != nil {
		return fmt.Errorf("writing 002_validate.sql: %w", err)
	}

	fmt.Printf("wrote %s\n", filepath.Join(outDir, "001_expand.sql"))
	fmt.Printf("wrote %s\n", filepath.Join(outDir, "002_validate.sql"))
	return nil
}
