package config

import "time"

// TopLevel wraps the app config so the config file can namespace everything
// under "tasklink.server"; viper's UnmarshalKey doesn't play well with env
// vars, hence the wrapping structs.
type TopLevel struct {
	Tasklink Tasklink `json:"tasklink" mapstructure:"tasklink"`
}

type Tasklink struct {
	Server App `json:"server" mapstructure:"server"`
}

type App struct {
	BindAddress     string              `json:"bind_address" mapstructure:"bind_address"`
	ShutdownTimeout time.Duration       `json:"shutdown_timeout" mapstructure:"shutdown_timeout"`
	Auth            *Auth               `json:"auth,omitempty" mapstructure:"auth"`
	Storage         Storage             `json:"storage" mapstructure:"storage"`
	Elasticsearch   ElasticsearchClient `json:"elasticsearch" mapstructure:"elasticsearch"`
	ApmClient       *ApmClient          `json:"apm,omitempty" mapstructure:"apm"`
	Logging         *Logging            `json:"logging,omitempty" mapstructure:"logging"`
	Activity        Activity            `json:"activity" mapstructure:"activity"`
}

// Auth holds basic-auth accounts that guard the HTTP route groups. When absent
// or empty, routes are unguarded and callers are identified by headers alone.
type Auth struct {
	BasicAuth []BasicAuthUser `json:"basic_auth" mapstructure:"basic_auth"`
}

type Logging struct {
	Json  *bool   `json:"json,omitempty" mapstructure:"json"`
	File  *string `json:"file,omitempty" mapstructure:"file"`
	Level *string `json:"level,omitempty" mapstructure:"level"`
}

// Storage picks the persistence backend
type Storage struct {
	// Backend is either "memory" or "elasticsearch"
	Backend string `json:"backend" mapstructure:"backend"`
}

const (
	StorageMemory        = "memory"
	StorageElasticsearch = "elasticsearch"
)

type ElasticsearchClient struct {
	Addresses []string       `json:"addresses" mapstructure:"addresses"`
	User      *BasicAuthUser `json:"user,omitempty" mapstructure:"user"`
}

type ApmClient struct {
	Address     *string `json:"address,omitempty" mapstructure:"address"`
	SecretToken *string `json:"secret_token,omitempty" mapstructure:"secret_token"`
}

type BasicAuthUser struct {
	Name     string `json:"name" mapstructure:"name"`
	Password string `json:"password" mapstructure:"password"`
}

// Activity configures the audit trail retention sweep
type Activity struct {
	// Retention is how long entries are kept before the sweeper removes them
	Retention time.Duration `json:"retention" mapstructure:"retention"`
	// SweepSchedule is a cron expression for when sweeps run
	SweepSchedule string `json:"sweep_schedule" mapstructure:"sweep_schedule"`
}
