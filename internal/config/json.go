package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type StructuredJSONConfig struct {
	Auth struct {
		TokenSignKey  string   `json:"token_sign_key"`
		TokenIssuer   string   `json:"token_issuer"`
		TokenDuration Duration `json:"token_duration"`
	} `json:"auth,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RelayAddress   string   `json:"relay_address"`
		RequestTimeout Duration `json:"request_timeout"`
		SessionTTL     Duration `json:"session_ttl"`
	} `json:"server,omitempty"`

	Device struct {
		LocalDBPath    string   `json:"local_db_path"`
		ServerURL      string   `json:"server_url"`
		LocalAddress   string   `json:"local_address"`
		RequestTimeout Duration `json:"request_timeout"`
		SyncInterval   Duration `json:"sync_interval"`
		PurgeRetention Duration `json:"purge_retention"`
	} `json:"device,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		Auth: Auth{
			TokenSignKey:  jsonCfg.Auth.TokenSignKey,
			TokenIssuer:   jsonCfg.Auth.TokenIssuer,
			TokenDuration: time.Duration(jsonCfg.Auth.TokenDuration),
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RelayAddress:   jsonCfg.Server.RelayAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
			SessionTTL:     time.Duration(jsonCfg.Server.SessionTTL),
		},
		Device: Device{
			LocalDBPath:    jsonCfg.Device.LocalDBPath,
			ServerURL:      jsonCfg.Device.ServerURL,
			LocalAddress:   jsonCfg.Device.LocalAddress,
			RequestTimeout: time.Duration(jsonCfg.Device.RequestTimeout),
			SyncInterval:   time.Duration(jsonCfg.Device.SyncInterval),
			PurgeRetention: time.Duration(jsonCfg.Device.PurgeRetention),
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
