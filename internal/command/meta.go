package command

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/joho/godotenv"
	"github.com/mitchellh/cli"

	quickemailverification "github.com/quickemailverification/quickemailverification-go"
)

// Environment variables read after the .env file is loaded.
const (
	EnvAPIKey     = "QEV_API_KEY"
	EnvUsername   = "QEV_USERNAME"
	EnvPassword   = "QEV_PASSWORD"
	EnvBaseURL    = "QEV_BASE_URL"
	EnvAPIVersion = "QEV_API_VERSION"
)

// DefaultEnvFile is loaded when present; a missing file is not an error.
const DefaultEnvFile = ".env"

// Meta holds state shared by every command.
type Meta struct {
	UI        cli.Ui
	LogOutput io.Writer
}

// FileConfig is the HCL configuration file layout.
type FileConfig struct {
	BaseURL     string            `hcl:"base_url,optional"`
	APIVersion  string            `hcl:"api_version,optional"`
	APIKey      string            `hcl:"api_key,optional"`
	Username    string            `hcl:"username,optional"`
	Password    string            `hcl:"password,optional"`
	AuthHeader  string            `hcl:"auth_header,optional"`
	RequestType string            `hcl:"request_type,optional"`
	Timeout     string            `hcl:"timeout,optional"`
	Headers     map[string]string `hcl:"headers,optional"`
}

// LoadFileConfig decodes an HCL or JSON configuration file.
func LoadFileConfig(path string) (*FileConfig, error) {
	var cfg FileConfig
	if err := hclsimple.DecodeFile(path, nil, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration from %s: %w", path, err)
	}
	return &cfg, nil
}

// clientFlags are the connection settings every request command accepts.
type clientFlags struct {
	configPath string
	envFile    string
	apiKey     string
	username   string
	password   string
	baseURL    string
	apiVersion string
	noVersion  bool
	authHeader string
	timeout    time.Duration
	headers    headerFlags
	verbose    bool
}

func (f *clientFlags) register(set *flag.FlagSet) {
	set.StringVar(&f.configPath, "config", "", "Path to an HCL configuration file")
	set.StringVar(&f.envFile, "env-file", DefaultEnvFile, "Path to a .env file")
	set.StringVar(&f.apiKey, "api-key", "", "API key (env "+EnvAPIKey+")")
	set.StringVar(&f.username, "username", "", "Basic auth username (env "+EnvUsername+")")
	set.StringVar(&f.password, "password", "", "Basic auth password (env "+EnvPassword+")")
	set.StringVar(&f.baseURL, "base-url", "", "API base URL (env "+EnvBaseURL+")")
	set.StringVar(&f.apiVersion, "api-version", "", "API version prefix (env "+EnvAPIVersion+")")
	set.BoolVar(&f.noVersion, "no-version", false, "Send the request without a version prefix")
	set.StringVar(&f.authHeader, "auth-header", "", "Header carrying the API key")
	set.DurationVar(&f.timeout, "timeout", 0, "Request timeout")
	set.Var(&f.headers, "header", "Extra header as Name:Value, repeatable")
	set.BoolVar(&f.verbose, "verbose", false, "Log each exchange to stderr")
}

// settings is the merged result of the config file, environment and flags.
// Later sources win.
type settings struct {
	FileConfig
	timeout time.Duration
}

func (f *clientFlags) resolve() (*settings, error) {
	if f.envFile != "" {
		if err := godotenv.Load(f.envFile); err != nil &&
			!(errors.Is(err, fs.ErrNotExist) && f.envFile == DefaultEnvFile) {
			return nil, fmt.Errorf("failed to load %s: %w", f.envFile, err)
		}
	}

	s := &settings{}
	if f.configPath != "" {
		cfg, err := LoadFileConfig(f.configPath)
		if err != nil {
			return nil, err
		}
		s.FileConfig = *cfg
		if cfg.Timeout != "" {
			d, err := time.ParseDuration(cfg.Timeout)
			if err != nil {
				return nil, fmt.Errorf("invalid timeout %q: %w", cfg.Timeout, err)
			}
			s.timeout = d
		}
	}

	override(&s.APIKey, os.Getenv(EnvAPIKey), f.apiKey)
	override(&s.Username, os.Getenv(EnvUsername), f.username)
	override(&s.Password, os.Getenv(EnvPassword), f.password)
	override(&s.BaseURL, os.Getenv(EnvBaseURL), f.baseURL)
	override(&s.APIVersion, os.Getenv(EnvAPIVersion), f.apiVersion)
	override(&s.AuthHeader, f.authHeader)
	if f.timeout > 0 {
		s.timeout = f.timeout
	}

	if len(f.headers) > 0 && s.Headers == nil {
		s.Headers = make(map[string]string, len(f.headers))
	}
	for _, h := range f.headers {
		s.Headers[h.name] = h.value
	}

	return s, nil
}

func override(dst *string, values ...string) {
	for _, v := range values {
		if v != "" {
			*dst = v
		}
	}
}

func (s *settings) credentials() (quickemailverification.Credentials, error) {
	switch {
	case s.APIKey != "":
		return quickemailverification.APIKey(s.APIKey), nil
	case s.Username != "":
		return quickemailverification.BasicAuth{Username: s.Username, Password: s.Password}, nil
	}
	return nil, fmt.Errorf("no credentials: set -api-key, %s or a username", EnvAPIKey)
}

// newClient builds a client from the merged settings.
func (m *Meta) newClient(f *clientFlags, s *settings) (*quickemailverification.Client, error) {
	creds, err := s.credentials()
	if err != nil {
		return nil, err
	}

	level := hclog.Warn
	if f.verbose {
		level = hclog.Debug
	}
	logOutput := m.LogOutput
	if logOutput == nil {
		logOutput = os.Stderr
	}

	opts := []quickemailverification.Option{
		quickemailverification.WithLogger(hclog.New(&hclog.LoggerOptions{
			Name:   "qev",
			Level:  level,
			Output: logOutput,
		})),
	}
	if s.BaseURL != "" {
		opts = append(opts, quickemailverification.WithBaseURL(s.BaseURL))
	}
	if s.APIVersion != "" {
		opts = append(opts, quickemailverification.WithAPIVersion(s.APIVersion))
	}
	if f.noVersion {
		opts = append(opts, quickemailverification.WithAPIVersion(""))
	}
	if s.AuthHeader != "" {
		opts = append(opts, quickemailverification.WithAuthHeader(s.AuthHeader))
	}
	if s.RequestType != "" {
		opts = append(opts, quickemailverification.WithDefaultRequestType(quickemailverification.RequestType(s.RequestType)))
	}
	if s.timeout > 0 {
		opts = append(opts, quickemailverification.WithTimeout(s.timeout))
	}
	if len(s.Headers) > 0 {
		opts = append(opts, quickemailverification.WithHeaders(s.Headers))
	}

	return quickemailverification.New(creds, opts...)
}

type header struct {
	name, value string
}

// headerFlags collects repeated -header Name:Value flags.
type headerFlags []header

func (h *headerFlags) String() string {
	parts := make([]string, 0, len(*h))
	for _, hv := range *h {
		parts = append(parts, hv.name+":"+hv.value)
	}
	sort.Strings(parts)
	return strings.Join(parts, ",")
}

func (h *headerFlags) Set(v string) error {
	name, value, ok := strings.Cut(v, ":")
	if !ok || strings.TrimSpace(name) == "" {
		return fmt.Errorf("header %q must be Name:Value", v)
	}
	*h = append(*h, header{name: strings.TrimSpace(name), value: strings.TrimSpace(value)})
	return nil
}
