// Package utils contains various common utils separate by utility types
package utils

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"text/tabwriter"

	"github.com/kelseyhightower/envconfig"
	"github.com/robfig/cron"
)

// PersisterType is the type of checkpoint persister to use.
type PersisterType int

const (
	// PersisterTypeInvalid is an invalid persister value
	PersisterTypeInvalid PersisterType = iota

	// PersisterTypeNone is a persister that does nothing but return default values
	PersisterTypeNone

	// PersisterTypeFile is a persister that uses a local JSON file as the backend
	PersisterTypeFile

	// PersisterTypePostgresql is a persister that uses PostgreSQL as the backend
	PersisterTypePostgresql
)

var (
	// PersisterNameToType maps valid persister names to the types above
	PersisterNameToType = map[string]PersisterType{
		"none":       PersisterTypeNone,
		"file":       PersisterTypeFile,
		"postgresql": PersisterTypePostgresql,
	}
)

const (
	envVarPrefix = "heartbeat"

	usageListFormat = `The heartbeat is configured via environment vars only. The following environment variables can be used:
{{range .}}
{{usage_key .}}
  description: {{usage_description .}}
  type:        {{usage_type .}}
  default:     {{usage_default .}}
  required:    {{usage_required .}}
{{end}}
`
)

// HeartbeatConfig is the master config for the heartbeat derived from
// environment variables.
type HeartbeatConfig struct {
	CronConfig  string `envconfig:"cron_config" desc:"Cron config string * * * * *, only needed by the cron binary"`
	SubgraphURL string `split_words:"true" required:"true" desc:"Juicebox subgraph GraphQL endpoint"`

	PaymentWebhookURLs       []string `envconfig:"payment_webhook_urls" required:"true" desc:"Webhook URLs to notify of payments"`
	ProjectCreateWebhookURLs []string `envconfig:"project_create_webhook_urls" required:"true" desc:"Webhook URLs to notify of new projects"`

	IpfsGatewayURL string `split_words:"true" default:"https://ipfs.io/ipfs" desc:"IPFS gateway base URL for metadata and logos"`
	EnsAPIURL      string `envconfig:"ens_api_url" default:"https://api.ensideas.com/ens/resolve" desc:"ENS name resolution API base URL"`
	ProjectBaseURL string `split_words:"true" default:"https://juicebox.money" desc:"Base URL for project and account links"`
	TxBaseURL      string `envconfig:"tx_base_url" default:"https://etherscan.io/tx" desc:"Base URL for transaction links"`

	ErrorLogPath        string `split_words:"true" default:"errors.txt" desc:"Path of the append-only delivery error log"`
	HTTPTimeoutSecs     int    `envconfig:"http_timeout_secs" default:"10" desc:"Timeout in seconds for each network operation"`
	MaxConcurrentEvents int    `split_words:"true" default:"5" desc:"Max events enriched concurrently per category"`

	PersisterType            PersisterType `ignored:"true"`
	PersisterTypeName        string        `split_words:"true" required:"true" desc:"Sets the persister type to use"`
	PersisterFilePath        string        `split_words:"true" default:"recent-runs.json" desc:"If persister type is file, sets the checkpoint file path"`
	PersisterPostgresAddress string        `split_words:"true" desc:"If persister type is Postgresql, sets the address"`
	PersisterPostgresPort    int           `split_words:"true" desc:"If persister type is Postgresql, sets the port"`
	PersisterPostgresDbname  string        `split_words:"true" desc:"If persister type is Postgresql, sets the database name"`
	PersisterPostgresUser    string        `split_words:"true" desc:"If persister type is Postgresql, sets the database user"`
	PersisterPostgresPw      string        `split_words:"true" desc:"If persister type is Postgresql, sets the database password"`
}

// OutputUsage prints the usage string to os.Stdout
func (c *HeartbeatConfig) OutputUsage() {
	tabs := tabwriter.NewWriter(os.Stdout, 1, 0, 4, ' ', 0)
	_ = envconfig.Usagef(envVarPrefix, c, tabs, usageListFormat) // nolint: gosec
	_ = tabs.Flush()                                             // nolint: gosec
}

// PopulateFromEnv processes the environment vars, populates HeartbeatConfig
// with the respective values, and validates the values.
func (c *HeartbeatConfig) PopulateFromEnv() error {
	err := envconfig.Process(envVarPrefix, c)
	if err != nil {
		return err
	}

	err = c.validateCronConfig()
	if err != nil {
		return err
	}

	err = c.validateURLs()
	if err != nil {
		return err
	}

	err = c.populatePersisterType()
	if err != nil {
		return err
	}

	return c.validatePersister()
}

func (c *HeartbeatConfig) validateCronConfig() error {
	if c.CronConfig == "" {
		return nil
	}
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	_, err := parser.Parse(c.CronConfig)
	if err != nil {
		return fmt.Errorf("Invalid cron config: '%v'", c.CronConfig)
	}
	return nil
}

func (c *HeartbeatConfig) validateURLs() error {
	if !isValidURL(c.SubgraphURL) {
		return fmt.Errorf("Invalid subgraph URL: '%v'", c.SubgraphURL)
	}
	for _, webhookURL := range c.PaymentWebhookURLs {
		if !isValidURL(webhookURL) {
			return fmt.Errorf("Invalid payment webhook URL: '%v'", webhookURL)
		}
	}
	for _, webhookURL := range c.ProjectCreateWebhookURLs {
		if !isValidURL(webhookURL) {
			return fmt.Errorf("Invalid project create webhook URL: '%v'", webhookURL)
		}
	}
	return nil
}

func isValidURL(rawurl string) bool {
	u, err := url.ParseRequestURI(rawurl)
	return err == nil && u.Scheme != "" && u.Host != ""
}

func (c *HeartbeatConfig) validatePersister() error {
	var err error
	if c.PersisterType == PersisterTypePostgresql {
		err = c.validatePostgresqlPersister()
		if err != nil {
			return err
		}
	} else if c.PersisterType == PersisterTypeFile {
		if c.PersisterFilePath == "" {
			return errors.New("Checkpoint file path required")
		}
	}
	return nil
}

func (c *HeartbeatConfig) validatePostgresqlPersister() error {
	if c.PersisterPostgresAddress == "" {
		return errors.New("Postgresql address required")
	}
	if c.PersisterPostgresPort == 0 {
		return errors.New("Postgresql port required")
	}
	if c.PersisterPostgresDbname == "" {
		return errors.New("Postgresql db name required")
	}
	return nil
}

func (c *HeartbeatConfig) populatePersisterType() error {
	var err error
	c.PersisterType, err = PersisterTypeFromName(c.PersisterTypeName)
	return err
}

// PersisterTypeFromName returns the correct persisterType from the string name
func PersisterTypeFromName(typeStr string) (PersisterType, error) {
	pType, ok := PersisterNameToType[typeStr]
	if !ok {
		validNames := make([]string, len(PersisterNameToType))
		index := 0
		for name := range PersisterNameToType {
			validNames[index] = name
			index++
		}
		return PersisterTypeInvalid,
			fmt.Errorf("Invalid persister value: %v; valid types %v", typeStr, validNames)
	}
	return pType, nil
}
