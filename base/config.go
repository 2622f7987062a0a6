package base

import (
	"log/slog"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds engine-level runtime settings. It is loaded from an
// optional YAML file (base.LoadConfig) layered over environment-variable
// defaults, the same override order the teacher service uses for its
// per-deployment settings.
type Config struct {
	ListenAddr      string   `yaml:"listenAddr" json:"listenAddr"`
	DefaultNS       string   `yaml:"defaultNamespace" json:"defaultNamespace"`
	DefaultPrefixes []Prefix `yaml:"defaultPrefixes" json:"defaultPrefixes"`
	SolrEndpoint    string   `yaml:"solrEndpoint" json:"solrEndpoint"`
	SolrIndex       string   `yaml:"solrIndex" json:"solrIndex"`
	StatsSchedule   string   `yaml:"statsSchedule" json:"statsSchedule"`
	ContactEmail    string   `yaml:"contactEmail,omitempty" json:"contactEmail,omitempty"`
}

// Prefix is a single prefix/namespace registration for the store's prefix
// registry (spec.md §3).
type Prefix struct {
	Name      string `yaml:"name" json:"name"`
	Namespace string `yaml:"namespace" json:"namespace"`
}

// Configuration is the process-wide configuration, seeded from
// environment variables and then optionally overridden by LoadConfig.
var Configuration = Config{
	ListenAddr:    EnvVar("LISTEN_ADDR", ":3000"),
	DefaultNS:     EnvVar("DEFAULT_NAMESPACE", "http://example.org/"),
	SolrEndpoint:  EnvVar("SOLR_ENDPOINT", "http://localhost:8983"),
	SolrIndex:     EnvVar("SOLR_INDEX", "rdf-literals"),
	StatsSchedule: EnvVar("STATS_CRON", ""),
	ContactEmail:  EnvVar("CONTACT_EMAIL", ""),
}

var logLevel = EnvVar("LOG_LEVEL", "INFO")

func init() {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err == nil {
		slog.SetLogLoggerLevel(level)
	}
}

// LoadConfig reads a YAML config file and merges it into Configuration.
// A missing file is not an error: environment-derived defaults stand.
func LoadConfig(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return yaml.Unmarshal(data, &Configuration)
}

var identifierRegex = regexp.MustCompile(`[\/*?"<>|#:.\- ]`)

// SanitizeIdentifier collapses characters unsafe for use as a Solr field
// or document id into underscores, lowercasing the result.
func SanitizeIdentifier(s string) string {
	return identifierRegex.ReplaceAllString(strings.ToLower(s), "_")
}
