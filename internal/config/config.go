package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/BoykoDmytr/Crypto-Calendar-sub000/internal/model"
)

// Channel is one configured ingest source. Username is the Telegram public
// channel slug (or a symbolic name for non-Telegram sources); Trigger is
// the phrase that must open a message for it to be parsed, empty meaning
// catch-all; Timezone names the wall-clock zone of the channel's dates when
// they are published without one.
type Channel struct {
	Username    string           `yaml:"username"`
	DisplayName string           `yaml:"display_name"`
	Trigger     string           `yaml:"trigger"`
	Source      model.SourceKind `yaml:"source"`
	Timezone    string           `yaml:"timezone"`
	OmitLink    bool             `yaml:"omit_link"`
}

type File struct {
	Channels []Channel `yaml:"channels"`
}

// LoadChannels reads the channel list from a YAML file. A run without
// channels cannot do meaningful work, so an empty list is an error.
func LoadChannels(path string) ([]Channel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read channels config: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse channels config: %w", err)
	}
	if len(f.Channels) == 0 {
		return nil, fmt.Errorf("channels config %s: no channels defined", path)
	}
	for i, ch := range f.Channels {
		if ch.Username == "" {
			return nil, fmt.Errorf("channels config %s: channel %d has no username", path, i)
		}
		if ch.Source == "" {
			return nil, fmt.Errorf("channels config %s: channel %q has no source", path, ch.Username)
		}
	}
	return f.Channels, nil
}
