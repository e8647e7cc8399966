package config

import (
	"fmt"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"guardian-epi/internal/domain/entity"
)

// Config is the runtime configuration: environment variables (prefixed
// GUARDIAN_, optionally via a .env file) over an optional guardian.yaml.
type Config struct {
	Profile          string
	LogsRoot         string
	CameraDevice     int
	FrameSampleEvery int
	NotifyAttempts   uint
	TelegramToken    string
	TelegramChatID   int64
	ResendAPIKey     string
	AlertEmailFrom   string
	AlertEmailTo     string
	Debug            bool

	Profiles map[string]entity.InspectionProfile
}

// profileOverride is the yaml shape allowed to adjust a built-in profile.
type profileOverride struct {
	Model     string   `mapstructure:"model"`
	Labels    string   `mapstructure:"labels"`
	Threshold float64  `mapstructure:"threshold"`
	Keywords  []string `mapstructure:"keywords"`
	Area      string   `mapstructure:"area"`
}

// Load reads configuration. cfgFile may be empty, in which case a
// guardian.yaml in the working directory is used when present.
func Load(cfgFile string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("guardian")
	v.AutomaticEnv()

	v.SetDefault("profile", "epi")
	v.SetDefault("logs_root", "logs")
	v.SetDefault("camera_device", 0)
	v.SetDefault("frame_sample_every", 3)
	v.SetDefault("notify_attempts", 3)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	} else {
		v.SetConfigName("guardian")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := &Config{
		Profile:          v.GetString("profile"),
		LogsRoot:         v.GetString("logs_root"),
		CameraDevice:     v.GetInt("camera_device"),
		FrameSampleEvery: v.GetInt("frame_sample_every"),
		NotifyAttempts:   v.GetUint("notify_attempts"),
		TelegramToken:    v.GetString("telegram_token"),
		TelegramChatID:   v.GetInt64("telegram_chat_id"),
		ResendAPIKey:     v.GetString("resend_api_key"),
		AlertEmailFrom:   v.GetString("alert_email_from"),
		AlertEmailTo:     v.GetString("alert_email_to"),
		Debug:            v.GetBool("debug"),
		Profiles:         DefaultProfiles(v.GetString("logs_root")),
	}

	if v.IsSet("perfis") {
		var overrides map[string]profileOverride
		if err := v.UnmarshalKey("perfis", &overrides); err != nil {
			return nil, fmt.Errorf("parse perfis: %w", err)
		}
		for name, o := range overrides {
			p, ok := cfg.Profiles[name]
			if !ok {
				return nil, fmt.Errorf("perfil desconhecido na configuracao: %s", name)
			}
			if o.Model != "" {
				p.ModelPath = o.Model
			}
			if o.Labels != "" {
				p.LabelsPath = o.Labels
			}
			if o.Threshold > 0 {
				p.Rule.Threshold = o.Threshold
			}
			if len(o.Keywords) > 0 {
				p.Rule.Keywords = o.Keywords
			}
			if o.Area != "" {
				p.Area = o.Area
			}
			cfg.Profiles[name] = p
		}
	}

	return cfg, nil
}

// SelectedProfile resolves the active profile, preferring the explicit
// name over the configured default.
func (c *Config) SelectedProfile(name string) (entity.InspectionProfile, error) {
	if name == "" {
		name = c.Profile
	}
	p, ok := c.Profiles[name]
	if !ok {
		return entity.InspectionProfile{}, fmt.Errorf("perfil desconhecido: %s", name)
	}
	return p, nil
}

// DefaultProfiles returns the three plant deployments. Thresholds,
// keywords, fallback labels and file naming follow the deployed systems.
func DefaultProfiles(logsRoot string) map[string]entity.InspectionProfile {
	return map[string]entity.InspectionProfile{
		"epi": {
			Name:           "epi",
			System:         "Guardian EPI",
			Area:           "Entrada da Fabrica",
			ModelPath:      "models/epi_model.onnx",
			LabelsPath:     "models/epi_labels.txt",
			DefaultLabels:  []string{"com_epi", "sem_epi"},
			Rule:           entity.ComplianceRule{Keywords: []string{"sem_epi"}, Threshold: 0.70, Inverted: true},
			AlertReason:    "Funcionario sem EPI detectado",
			EvidencePrefix: "imagem_ocorrencia",
			LogsDir:        logsRoot,
			LogFileName:    "ocorrencias_epi.log",
		},
		"uniforme": {
			Name:           "uniforme",
			System:         "Controle de Uniformes - Qualidade",
			Area:           "Zona de Alta Higiene - Embalagem",
			ModelPath:      "models/uniforme_model.onnx",
			LabelsPath:     "models/uniforme_labels.txt",
			DefaultLabels:  []string{"uniforme_correto", "uniforme_incorreto"},
			Rule:           entity.ComplianceRule{Keywords: []string{"correto"}, Threshold: 0.75},
			AlertReason:    "Uniforme nao conforme detectado",
			EvidencePrefix: "violacao_uniforme",
			LogsDir:        filepath.Join(logsRoot, "controle_qualidade"),
			LogFileName:    "violacoes_uniforme.log",
		},
		"esteira": {
			Name:           "esteira",
			System:         "Detector de Objetos Estranhos",
			Area:           "Esteira de Embalagem",
			ModelPath:      "models/objeto_model.onnx",
			LabelsPath:     "models/objeto_labels.txt",
			DefaultLabels:  []string{"produto_limpo", "objeto_estranho"},
			Rule:           entity.ComplianceRule{Keywords: []string{"estranho", "foreign"}, Threshold: 0.80, Inverted: true},
			AlertReason:    "Objeto estranho na esteira",
			EvidencePrefix: "objeto_estranho",
			LogsDir:        filepath.Join(logsRoot, "deteccao_objetos"),
			LogFileName:    "deteccoes_objetos.log",
			Conveyor:       true,
		},
	}
}
