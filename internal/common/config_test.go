package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Database: DatabaseConfig{DSN: "file:test.db"},
		Server:   ServerConfig{HTTPAddr: ":8000", ContentDir: "files"},
		OCR:      OCRConfig{Language: "eng"},
		Pipeline: PipelineConfig{Workers: 2, QueueSize: 16, ProcessTimeout: time.Minute},
	}
}

func TestValidateAcceptsCompleteConfig(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestValidateRequiresDSN(t *testing.T) {
	cfg := validConfig()
	cfg.Database.DSN = ""
	assert.Error(t, cfg.Validate())
}

func TestValidateRequiresWorkers(t *testing.T) {
	cfg := validConfig()
	cfg.Pipeline.Workers = 0
	assert.Error(t, cfg.Validate())
}

// The built-in PDF fonts cannot carry Cyrillic, so a non-Latin OCR language
// without a configured UTF-8 font must not pass validation.
func TestValidateRequiresFontForNonLatinLanguage(t *testing.T) {
	tests := []struct {
		name     string
		lang     string
		fontPath string
		wantErr  bool
	}{
		{name: "macedonian without font", lang: "mkd", fontPath: "", wantErr: true},
		{name: "macedonian with font", lang: "mkd", fontPath: "/fonts/DejaVuSans.ttf", wantErr: false},
		{name: "english without font", lang: "eng", fontPath: "", wantErr: false},
		{name: "mixed spec with cyrillic component", lang: "mkd+eng", fontPath: "", wantErr: true},
		{name: "mixed latin spec", lang: "eng+deu", fontPath: "", wantErr: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.OCR.Language = tt.lang
			cfg.Report.FontPath = tt.fontPath
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "REPORT_FONT")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
