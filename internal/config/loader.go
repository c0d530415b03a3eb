package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

func loadYAML(path string, out any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(b, out)
}

func LoadScenario(path string) (*ScenarioConfig, error) {
	var sc ScenarioConfig
	if err := loadYAML(path, &sc); err != nil {
		return nil, fmt.Errorf("load scenario %s: %w", path, err)
	}
	if err := sc.Validate(); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return &sc, nil
}

func LoadCampaign(path string) (*CampaignConfig, error) {
	var cc CampaignConfig
	if err := loadYAML(path, &cc); err != nil {
		return nil, fmt.Errorf("load campaign %s: %w", path, err)
	}
	if err := cc.Validate(); err != nil {
		return nil, fmt.Errorf("campaign %s: %w", path, err)
	}
	return &cc, nil
}

// LoadAll reads scenario.yaml and, when present, campaign.yaml from dir.
// A missing campaign file yields DefaultCampaign.
func LoadAll(dir string) (*ScenarioConfig, *CampaignConfig, error) {
	sc, err := LoadScenario(filepath.Join(dir, "scenario.yaml"))
	if err != nil {
		return nil, nil, err
	}
	cc, err := LoadCampaign(filepath.Join(dir, "campaign.yaml"))
	if errors.Is(err, fs.ErrNotExist) {
		return sc, DefaultCampaign(), nil
	}
	if err != nil {
		return nil, nil, err
	}
	return sc, cc, nil
}
