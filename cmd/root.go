package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hardwaylabs/conacct/pkg/api"
	"github.com/hardwaylabs/conacct/pkg/cli"
	"github.com/hardwaylabs/conacct/pkg/config"
	"github.com/hardwaylabs/conacct/pkg/logger"
	"github.com/hardwaylabs/conacct/pkg/token"
)

// NewRootCmd builds the conacct command. Each call returns a fresh command
// with its own viper instance, so parallel test runs never share flag state.
func NewRootCmd() *cobra.Command {
	v := config.NewViper()
	var envFile string

	cmd := &cobra.Command{
		Use:   "conacct -i connected-account-id [-e env-file] [-a access-token] [-v]",
		Short: "Delete a connected account through the me/v1 API",
		Long: `conacct deletes one connected account via the connected-accounts REST API.

The bearer access token is taken from the -a flag, the CONACCT_ACCESS_TOKEN
environment variable, an env file named with -e, or a conacct.env file next to
the executable, in that order of precedence. The token's iss claim selects the
API host; its scope claim must grant ` + api.ScopeDeleteConnectedAccounts + `.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.NoArgs(cmd, args); err != nil {
				return cli.Wrap(cli.KindUsage, err)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(cmd, v, envFile)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&envFile, "env-file", "e", "", "env file to load (fatal when missing)")
	flags.StringP("access-token", "a", "", "bearer access token (overrides env sources)")
	flags.StringP("id", "i", "", "connected account identifier to delete (required)")
	flags.BoolP("verbose", "v", false, "verbose diagnostics on stderr")
	flags.Duration("timeout", config.DefaultTimeout, "HTTP request timeout")

	v.BindPFlag("access_token", flags.Lookup("access-token"))
	v.BindPFlag("connected_account_id", flags.Lookup("id"))
	v.BindPFlag("verbose", flags.Lookup("verbose"))
	v.BindPFlag("timeout", flags.Lookup("timeout"))

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return cli.Wrap(cli.KindUsage, err)
	})

	cmd.AddCommand(newVersionCmd())
	return cmd
}

// Execute runs the command against os.Args and returns the process exit code.
func Execute() int {
	return Run(os.Args[1:], os.Stdout, os.Stderr)
}

// Run executes the root command with primary output on stdout and all
// diagnostics on stderr.
func Run(args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCmd()
	cmd.SetArgs(normalizeHelp(args))
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	if err == nil {
		return cli.ExitOK
	}
	fmt.Fprintln(stderr, "Error:", err)
	if cli.KindOf(err) == cli.KindUsage {
		fmt.Fprint(stderr, cmd.UsageString())
	}
	return cli.ExitCode(err)
}

// normalizeHelp maps the conventional "-?" spelling onto the help flag.
func normalizeHelp(args []string) []string {
	out := make([]string, len(args))
	for i, a := range args {
		if a == "-?" {
			out[i] = "--help"
		} else {
			out[i] = a
		}
	}
	return out
}

func runDelete(cmd *cobra.Command, v *viper.Viper, envFile string) error {
	cfg, err := config.Load(v, config.DefaultEnvPath(), envFile)
	if err != nil {
		return err
	}

	log := logger.New(cmd.ErrOrStderr(), cfg.Verbose)

	if cfg.ConnectedAccountID == "" {
		return cli.Errorf(cli.KindUsage, "required flag \"id\" not set")
	}
	if cfg.AccessToken == "" {
		return cli.Errorf(cli.KindUsage,
			"no access token: pass -a or set ACCESS_TOKEN in an env file")
	}

	claims, err := token.Extract(cfg.AccessToken)
	if err != nil {
		return err
	}
	log.Debug("decoded token claims", "claims", claims)

	if err := claims.RequireScope(api.ScopeDeleteConnectedAccounts); err != nil {
		return err
	}

	client, err := api.NewClient(claims, cfg.AccessToken,
		api.WithTimeout(cfg.Timeout), api.WithLogger(log))
	if err != nil {
		return err
	}

	resp, err := client.DeleteConnectedAccount(cmd.Context(), cfg.ConnectedAccountID)
	if err != nil {
		return err
	}

	return report(cmd, resp, client.ConnectedAccountURL(cfg.ConnectedAccountID), log, cfg.Verbose)
}

// report writes the outcome of the delete call. Success bodies go to stdout;
// everything diagnostic, including failure bodies, goes to stderr.
func report(cmd *cobra.Command, resp *api.Response, reqURL string, log *slog.Logger, verbose bool) error {
	errOut := cmd.ErrOrStderr()

	if resp.OK() {
		if verbose && len(resp.Body) > 0 {
			fmt.Fprintln(errOut, prettyJSON(resp.Body))
		}
		log.Debug("connected account deleted", "status", resp.StatusCode)
		if len(resp.Body) > 0 {
			fmt.Fprintln(cmd.OutOrStdout(), string(resp.Body))
		}
		return nil
	}

	if len(resp.Body) > 0 {
		fmt.Fprintln(errOut, prettyJSON(resp.Body))
	}
	return cli.Errorf(cli.KindHTTP, "delete failed: HTTP %d from %s", resp.StatusCode, reqURL)
}

// prettyJSON indents valid JSON and returns anything else untouched.
func prettyJSON(body []byte) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, body, "", "  "); err != nil {
		return string(body)
	}
	return buf.String()
}
