package cli

import (
	"encoding/json"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/roach88/dataverse"
)

// GetOptions holds flags for the get command.
type GetOptions struct {
	*RootOptions
	Query      QueryFlags
	ConfigPath string
	NotFoundOK bool
	AllPages   bool
}

// fileConfig is the YAML shape of a connection config file.
type fileConfig struct {
	APIURL       string   `yaml:"api_url"`
	TokenURL     string   `yaml:"token_url"`
	ClientID     string   `yaml:"client_id"`
	ClientSecret string   `yaml:"client_secret"`
	Scopes       []string `yaml:"scopes"`
	CacheToken   *bool    `yaml:"cache_token"`
	CachePath    string   `yaml:"cache_path"`
	Timeout      int      `yaml:"timeout_seconds"`
}

// NewGetCommand creates the get command.
func NewGetCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GetOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Execute a GET request against the Web API",
		Long: `Compile the query flags and execute a GET request. Connection
settings come from a YAML config file when --config is given, otherwise from
DATAVERSE_* environment variables.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(opts, cmd)
		},
	}

	opts.Query.Register(cmd)
	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "path to a YAML connection config")
	cmd.Flags().BoolVar(&opts.NotFoundOK, "not-found-ok", false, "return an empty list instead of failing on no matches")
	cmd.Flags().BoolVar(&opts.AllPages, "all-pages", false, "follow continuation links until exhausted")

	return cmd
}

func loadConfig(path string) (dataverse.Config, error) {
	if path == "" {
		return dataverse.FromEnvironment()
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return dataverse.Config{}, err
	}

	var file fileConfig
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return dataverse.Config{}, err
	}

	cfg := dataverse.Config{
		APIURL:       file.APIURL,
		TokenURL:     file.TokenURL,
		ClientID:     file.ClientID,
		ClientSecret: file.ClientSecret,
		Scopes:       file.Scopes,
		CacheToken:   true,
		CachePath:    file.CachePath,
		Timeout:      5 * time.Second,
	}
	if file.CacheToken != nil {
		cfg.CacheToken = *file.CacheToken
	}
	if file.Timeout > 0 {
		cfg.Timeout = time.Duration(file.Timeout) * time.Second
	}

	return cfg, nil
}

func runGet(opts *GetOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	options, err := opts.Query.Build()
	if err != nil {
		_ = formatter.Error("INVALID_FLAGS", err.Error())
		return WrapExitError(ExitCommandError, "invalid query flags", err)
	}

	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		_ = formatter.Error("INVALID_CONFIG", err.Error())
		return WrapExitError(ExitCommandError, "cannot load connection config", err)
	}

	client, err := dataverse.NewClient(cfg)
	if err != nil {
		_ = formatter.Error("INVALID_CONFIG", err.Error())
		return WrapExitError(ExitCommandError, "cannot create client", err)
	}

	*client.Query() = *options.Clone()

	compiled, err := client.Query().Compile()
	if err != nil {
		_ = formatter.Error("INVALID_QUERY", err.Error())
		return WrapExitError(ExitCommandError, "query does not compile", err)
	}
	formatter.VerboseLog("GET %s", compiled)

	getOpts := dataverse.GetOptions{NotFoundOK: opts.NotFoundOK}
	var response *dataverse.GetResponse
	if opts.AllPages {
		response, err = client.GetAll(cmd.Context(), getOpts)
	} else {
		response, err = client.Get(cmd.Context(), getOpts)
	}
	if err != nil {
		_ = formatter.Error("REQUEST_FAILED", err.Error())
		return WrapExitError(ExitFailure, "request failed", err)
	}

	if opts.Format == "json" {
		return formatter.Success(response.Data)
	}

	encoded, err := json.MarshalIndent(response.Data, "", "  ")
	if err != nil {
		return err
	}
	return formatter.Success(string(encoded))
}
