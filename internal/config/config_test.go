package config

import "testing"

func TestValidate_InvalidDriver(t *testing.T) {
	cfg := Config{
		HTTP: HTTPConfig{Port: 8080},
		Engine: EngineConfig{
			Driver: "solr",
			Addrs:  []string{"http://localhost:9200"},
		},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid engine driver")
	}

	expected := `engine.driver must be "elasticsearch" or "opensearch", got "solr"`
	if err.Error() != expected {
		t.Errorf("unexpected error message:\ngot:  %q\nwant: %q", err.Error(), expected)
	}
}

func TestValidate_ValidDrivers(t *testing.T) {
	validDrivers := []string{"elasticsearch", "opensearch"}

	for _, driver := range validDrivers {
		t.Run("driver="+driver, func(t *testing.T) {
			cfg := Config{
				HTTP: HTTPConfig{Port: 8080},
				Engine: EngineConfig{
					Driver: driver,
					Addrs:  []string{"http://localhost:9200"},
				},
			}

			err := cfg.Validate()
			if err != nil {
				t.Fatalf("unexpected error for valid driver %q: %v", driver, err)
			}
		})
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := Config{
		HTTP: HTTPConfig{Port: 0},
		Engine: EngineConfig{
			Driver: "elasticsearch",
			Addrs:  []string{"http://localhost:9200"},
		},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_MissingEngineAddrs(t *testing.T) {
	cfg := Config{
		HTTP: HTTPConfig{Port: 8080},
		Engine: EngineConfig{
			Driver: "elasticsearch",
			Addrs:  []string{},
		},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing engine addrs")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 10 {
		t.Errorf("expected WriteTimeoutSec=10, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Engine.Driver != "elasticsearch" {
		t.Errorf("expected Driver=elasticsearch, got %q", cfg.Engine.Driver)
	}
	if cfg.Engine.MaxRetries != 5 {
		t.Errorf("expected MaxRetries=5, got %d", cfg.Engine.MaxRetries)
	}
	if cfg.Engine.BulkBatchSize != 100 {
		t.Errorf("expected BulkBatchSize=100, got %d", cfg.Engine.BulkBatchSize)
	}
	if cfg.Engine.ReadinessTimeout != 10 {
		t.Errorf("expected ReadinessTimeout=10, got %d", cfg.Engine.ReadinessTimeout)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:   HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Engine: EngineConfig{Driver: "opensearch", MaxRetries: 3, BulkBatchSize: 50, ReadinessTimeout: 15},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected ReadTimeoutSec=30, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 60 {
		t.Errorf("expected WriteTimeoutSec=60, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.Engine.Driver != "opensearch" {
		t.Errorf("expected Driver=opensearch, got %q", cfg.Engine.Driver)
	}
	if cfg.Engine.MaxRetries != 3 {
		t.Errorf("expected MaxRetries=3, got %d", cfg.Engine.MaxRetries)
	}
	if cfg.Engine.BulkBatchSize != 50 {
		t.Errorf("expected BulkBatchSize=50, got %d", cfg.Engine.BulkBatchSize)
	}
}
