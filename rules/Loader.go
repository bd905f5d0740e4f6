package rules

import (
	"fmt"
	"io/fs"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// LoadAllRuleSets reads every *.yaml rule pack under dir in the given
// filesystem (typically the embedded defaults).
func LoadAllRuleSets(f fs.FS, dir string) ([]*RuleSet, error) {
	entries, err := fs.ReadDir(f, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules directory %s: %w", dir, err)
	}

	var sets []*RuleSet
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !strings.HasSuffix(entry.Name(), ".yaml") && !strings.HasSuffix(entry.Name(), ".yml") {
			continue
		}
		content, err := fs.ReadFile(f, dir+"/"+entry.Name())
		if err != nil {
			log.Errorf("Failed to read rule pack %s: %v", entry.Name(), err)
			continue
		}
		set, err := parseRuleSet(content)
		if err != nil {
			log.Errorf("Failed to parse rule pack %s: %v", entry.Name(), err)
			continue
		}
		sets = append(sets, set)
	}
	return sets, nil
}

// LoadRuleSetFile reads a rule pack from disk, for `apply -f`.
func LoadRuleSetFile(path string) (*RuleSet, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rule pack %s: %w", path, err)
	}
	return parseRuleSet(content)
}

func parseRuleSet(content []byte) (*RuleSet, error) {
	var set RuleSet
	if err := yaml.Unmarshal(content, &set); err != nil {
		return nil, err
	}
	if err := set.Compile(); err != nil {
		return nil, err
	}
	return &set, nil
}

// FindRuleSet returns the pack with the given name.
func FindRuleSet(sets []*RuleSet, name string) (*RuleSet, error) {
	for _, set := range sets {
		if set.Name == name {
			return set, nil
		}
	}
	return nil, fmt.Errorf("unknown rule set: %s", name)
}
