// File path: internal/importer/aliases.go
package importer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Logical field names used by the section builders. Builders never read raw
// header text; they resolve these fields through an AliasTable.
const (
	FieldCategory     = "category"
	FieldLabel        = "label"
	FieldValue        = "value"
	FieldNote         = "note"
	FieldProductName  = "product name"
	FieldEndDate      = "contract end date"
	FieldAssetID      = "asset id"
	FieldAltAssetID   = "alternate asset id"
	FieldAssetAlias   = "asset alias"
	FieldServiceLevel = "service level"
	FieldContractType = "contract type"
	FieldConnectivity = "connectivity status"
	FieldHealthScore  = "health score"
	FieldHealthLabel  = "health label"
	FieldCount        = "count"
	FieldPercent      = "percent"
)

// AliasTable maps a logical field to the canonical header keys accepted for
// it, in priority order. Tables are immutable once handed to an Engine.
type AliasTable map[string][]string

// DefaultAliases returns the compiled-in alias table covering the header
// spellings observed across vendor asset exports and hand-curated sheets.
func DefaultAliases() AliasTable {
	return AliasTable{
		FieldCategory:     {"section", "row type", "type", "entry type"},
		FieldLabel:        {"name", "key", "item"},
		FieldValue:        {"text", "content", "detail", "details"},
		FieldNote:         {"notes", "comment", "comments", "remarks"},
		FieldProductName:  {"product", "product description", "model", "product model"},
		FieldEndDate:      {"end date", "expires", "expiry date", "expiration date", "contract end", "end of standard support", "support end date", "warranty end date"},
		FieldAssetID:      {"serial number", "serial", "service tag", "asset tag", "serial no"},
		FieldAltAssetID:   {"alt asset id", "alternate id", "secondary asset id"},
		FieldAssetAlias:   {"alias", "asset name", "hostname", "host name"},
		FieldServiceLevel: {"service status", "service level code", "support level", "service plan"},
		FieldContractType: {"contract", "support type", "agreement type"},
		FieldConnectivity: {"connectivity", "connection status", "connected", "connection state"},
		FieldHealthScore:  {"score", "health"},
		FieldHealthLabel:  {"health status", "health rating"},
		FieldCount:        {"quantity", "qty", "total", "assets", "asset count"},
		FieldPercent:      {"percentage", "pct", "share", "percent of total"},
	}
}

// DefaultCustomerColumns is the priority list the customer filter scans when
// deciding whether a row belongs to the selected customer.
func DefaultCustomerColumns() []string {
	return []string{
		"customer",
		"customer name",
		"account",
		"account name",
		"location name",
		"site name",
		"installation",
	}
}

// AliasConfig is the YAML override shape for alias tables. Overrides extend
// the defaults; they never remove a compiled-in alias.
type AliasConfig struct {
	Fields          map[string][]string `yaml:"fields"`
	CustomerColumns []string            `yaml:"customer_columns"`
}

// LoadAliasConfig reads the optional override file named by the
// IMPORT_ALIAS_FILE environment variable. A missing variable yields the
// zero config.
func LoadAliasConfig() (AliasConfig, error) {
	path := strings.TrimSpace(os.Getenv("IMPORT_ALIAS_FILE"))
	if path == "" {
		return AliasConfig{}, nil
	}
	return loadAliasFile(path)
}

func loadAliasFile(path string) (AliasConfig, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return AliasConfig{}, fmt.Errorf("read alias config: %w", err)
	}
	var cfg AliasConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return AliasConfig{}, fmt.Errorf("parse alias config: %w", err)
	}
	return cfg, nil
}

// Merge layers the override config on top of a base table, normalizing every
// key through NormalizeKey so override files can use raw header spellings.
func (c AliasConfig) Merge(base AliasTable) AliasTable {
	out := make(AliasTable, len(base))
	for field, aliases := range base {
		out[field] = append([]string(nil), aliases...)
	}
	for field, aliases := range c.Fields {
		canonical := NormalizeKey(field)
		if canonical == "" {
			continue
		}
		existing := out[canonical]
		seen := make(map[string]struct{}, len(existing))
		for _, a := range existing {
			seen[a] = struct{}{}
		}
		for _, alias := range aliases {
			key := NormalizeKey(alias)
			if key == "" {
				continue
			}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			existing = append(existing, key)
		}
		out[canonical] = existing
	}
	return out
}

// MergeCustomerColumns layers override customer columns on top of the
// defaults, preserving the default priority order.
func (c AliasConfig) MergeCustomerColumns(base []string) []string {
	out := append([]string(nil), base...)
	seen := make(map[string]struct{}, len(out))
	for _, col := range out {
		seen[col] = struct{}{}
	}
	for _, col := range c.CustomerColumns {
		key := NormalizeKey(col)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	return out
}
