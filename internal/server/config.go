package server

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/cardroomlabs/cardroom/internal/game"
)

// Config represents the complete server configuration
type Config struct {
	Server ServerSettings `hcl:"server,block"`
	Rooms  []RoomConfig   `hcl:"room,block"`
}

// ServerSettings contains server-level configuration
type ServerSettings struct {
	Address  string `hcl:"address,optional"`
	Port     int    `hcl:"port,optional"`
	LogLevel string `hcl:"log_level,optional"`
	Seed     int64  `hcl:"seed,optional"`
}

// RoomConfig defines one poker room
type RoomConfig struct {
	Name            string  `hcl:"name,label"`
	Variant         string  `hcl:"variant,optional"`
	Limit           string  `hcl:"limit,optional"`
	Seats           int     `hcl:"seats,optional"`
	SmallBlind      float64 `hcl:"small_blind"`
	BigBlind        float64 `hcl:"big_blind"`
	Ante            float64 `hcl:"ante,optional"`
	MinDenomination float64 `hcl:"min_denomination,optional"`
	MaxRaises       int     `hcl:"max_raises,optional"`
	BuyInMin        float64 `hcl:"buy_in_min,optional"`
	BuyInMax        float64 `hcl:"buy_in_max,optional"`
	RakePercent     float64 `hcl:"rake_percent,optional"`
	RakeCap         float64 `hcl:"rake_cap,optional"`
	ActionTimeout   int     `hcl:"action_timeout_seconds,optional"`
	AutoStart       bool    `hcl:"auto_start,optional"`
}

// DefaultConfig returns the default server configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerSettings{
			Address:  "localhost",
			Port:     8080,
			LogLevel: "info",
		},
		Rooms: []RoomConfig{
			{
				Name:            "main",
				Variant:         string(game.VariantHoldem),
				Limit:           "no_limit",
				Seats:           6,
				SmallBlind:      1,
				BigBlind:        2,
				MinDenomination: 0.25,
				BuyInMin:        100,
				BuyInMax:        1000,
				ActionTimeout:   30,
				AutoStart:       true,
			},
		},
	}
}

// LoadConfig loads server configuration from an HCL file. A missing file
// yields the defaults.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	if config.Server.Address == "" {
		config.Server.Address = "localhost"
	}
	if config.Server.Port == 0 {
		config.Server.Port = 8080
	}
	if config.Server.LogLevel == "" {
		config.Server.LogLevel = "info"
	}

	for i := range config.Rooms {
		applyRoomDefaults(&config.Rooms[i])
	}

	return &config, nil
}

func applyRoomDefaults(rc *RoomConfig) {
	if rc.Variant == "" {
		rc.Variant = string(game.VariantHoldem)
	}
	if rc.Limit == "" {
		rc.Limit = "no_limit"
	}
	if rc.Seats == 0 {
		rc.Seats = 6
	}
	if rc.MinDenomination == 0 {
		rc.MinDenomination = 0.25
	}
	if rc.BuyInMin == 0 {
		rc.BuyInMin = rc.BigBlind * 50
	}
	if rc.BuyInMax == 0 {
		rc.BuyInMax = rc.BigBlind * 500
	}
	if rc.ActionTimeout == 0 {
		rc.ActionTimeout = 30
	}
}

// Validate validates the server configuration
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}

	if len(c.Rooms) == 0 {
		return fmt.Errorf("at least one room must be configured")
	}

	for _, rc := range c.Rooms {
		if _, err := game.NewVariant(game.VariantID(rc.Variant)); err != nil {
			return fmt.Errorf("room %s: unknown variant %q", rc.Name, rc.Variant)
		}
		if _, err := game.ParseLimitType(rc.Limit); err != nil {
			return fmt.Errorf("room %s: %v", rc.Name, err)
		}
		if rc.SmallBlind <= 0 {
			return fmt.Errorf("room %s: small blind must be positive", rc.Name)
		}
		if rc.BigBlind <= rc.SmallBlind {
			return fmt.Errorf("room %s: big blind must be greater than small blind", rc.Name)
		}
		if rc.Seats < 2 || rc.Seats > 10 {
			return fmt.Errorf("room %s: seats must be between 2 and 10", rc.Name)
		}
		if rc.BuyInMin >= rc.BuyInMax {
			return fmt.Errorf("room %s: buy-in minimum must be less than maximum", rc.Name)
		}
		if rc.RakePercent < 0 || rc.RakePercent >= 1 {
			return fmt.Errorf("room %s: rake percent must be in [0, 1)", rc.Name)
		}
	}

	return nil
}

// Address returns the full listen address
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}

// GameConfig converts a room configuration into an engine configuration
func (rc RoomConfig) GameConfig() (game.Config, error) {
	limit, err := game.ParseLimitType(rc.Limit)
	if err != nil {
		return game.Config{}, err
	}

	cfg := game.Config{
		Variant: game.VariantID(rc.Variant),
		Structure: game.BettingStructure{
			Limit:           limit,
			SmallBlind:      rc.SmallBlind,
			BigBlind:        rc.BigBlind,
			Ante:            rc.Ante,
			MinDenomination: rc.MinDenomination,
			MaxRaises:       rc.MaxRaises,
		},
		Seats: rc.Seats,
	}
	if rc.RakePercent > 0 {
		cfg.Rake = &game.RakeCalculator{
			Percent:      rc.RakePercent,
			Cap:          rc.RakeCap,
			Denomination: rc.MinDenomination,
		}
	}
	return cfg, nil
}
