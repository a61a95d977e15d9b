package wager

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Ledger maps each participant to the season home-run totals they picked.
type Ledger map[string][]int

// DefaultLedger returns the standing bet.
func DefaultLedger() Ledger {
	return Ledger{
		"Tim":    {54, 55, 56, 60},
		"Austin": {53, 57, 58, 59},
		"Matt":   {61, 62, 63, 64},
	}
}

// LoadLedger reads a participant-to-picks mapping from a YAML file, e.g.
//
//	Tim: [54, 55, 56, 60]
//	Austin: [53, 57, 58, 59]
func LoadLedger(path string) (Ledger, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ledger: %w", err)
	}
	var ledger Ledger
	if err := yaml.Unmarshal(data, &ledger); err != nil {
		return nil, fmt.Errorf("parse ledger: %w", err)
	}
	if len(ledger) == 0 {
		return nil, fmt.Errorf("ledger %s: no participants", path)
	}
	for name, picks := range ledger {
		if len(picks) == 0 {
			return nil, fmt.Errorf("ledger %s: participant %q has no picks", path, name)
		}
	}
	return ledger, nil
}

// Names returns participant names in deterministic order.
func (l Ledger) Names() []string {
	names := make([]string, 0, len(l))
	for name := range l {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
