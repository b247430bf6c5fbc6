// Package config carrega a configuração da aplicação a partir de um
// config.toml ao lado do executável, com defaults e overrides por variável
// de ambiente.
package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// AppConfig configuração da aplicação.
type AppConfig struct {
	Server ServerConfig `toml:"server"`
	Data   DataConfig   `toml:"data"`
	Auth   AuthConfig   `toml:"auth"`
	Mail   MailConfig   `toml:"mail"`
	PDF    PDFConfig    `toml:"pdf"`
}

// ServerConfig configuração do servidor HTTP.
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

// DataConfig configuração de dados.
type DataConfig struct {
	DataDir string `toml:"data_dir"`
}

// AuthConfig configuração de autenticação (cookie de sessão JWT).
type AuthConfig struct {
	Secret          string `toml:"secret"`
	CookieName      string `toml:"cookie_name"`
	CookieDomain    string `toml:"cookie_domain"`
	SessionTTLHours int    `toml:"session_ttl_hours"`
	SeedEmail       string `toml:"seed_email"`
	SeedPassword    string `toml:"seed_password"`
	SeedName        string `toml:"seed_name"`
}

// MailConfig configuração do transporte SMTP.
type MailConfig struct {
	Host       string `toml:"host"`
	Port       int    `toml:"port"`
	Username   string `toml:"username"`
	Password   string `toml:"password"`
	From       string `toml:"from"`
	SenderName string `toml:"sender_name"`
}

// PDFConfig configuração do renderizador de PDF (Chromium headless).
type PDFConfig struct {
	ChromePath     string `toml:"chrome_path"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	SplitThreshold int    `toml:"split_threshold"`
}

// DefaultConfig configuração padrão.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:    8080,
			DevMode: false,
		},
		Data: DataConfig{
			DataDir: "data",
		},
		Auth: AuthConfig{
			Secret:          "dev-secret-change-me",
			CookieName:      "session",
			SessionTTLHours: 24 * 7,
			SeedEmail:       "admin@empresa.com",
			SeedPassword:    "admin123",
			SeedName:        "Administrador",
		},
		Mail: MailConfig{
			Port:       587,
			From:       "no-reply@localhost",
			SenderName: "Pedidos",
		},
		PDF: PDFConfig{
			TimeoutSeconds: 30,
			SplitThreshold: 30,
		},
	}
}

// GetExeDir diretório do executável.
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// LoadConfig carrega config.toml do diretório do executável. Arquivo ausente
// não é erro: valem os defaults e as variáveis de ambiente.
func LoadConfig() (*AppConfig, error) {
	config := DefaultConfig()

	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}
	configPath := filepath.Join(exeDir, "config.toml")

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnvOverrides(config)
			return config, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, err
	}

	applyEnvOverrides(config)
	return config, nil
}

// SaveConfig grava a configuração em config.toml.
func SaveConfig(config *AppConfig) error {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}
	configPath := filepath.Join(exeDir, "config.toml")

	data, err := toml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(configPath, data, 0644)
}

// applyEnvOverrides mantém os nomes de variável da versão anterior do
// sistema (AUTH_*, SMTP_*, SEED_*) para não quebrar deploys existentes.
func applyEnvOverrides(config *AppConfig) {
	if v := os.Getenv("AUTH_SECRET"); v != "" {
		config.Auth.Secret = v
	}
	if v := os.Getenv("COOKIE_DOMAIN"); v != "" {
		config.Auth.CookieDomain = v
	}
	if v := os.Getenv("SEED_EMAIL"); v != "" {
		config.Auth.SeedEmail = v
	}
	if v := os.Getenv("SEED_PASSWORD"); v != "" {
		config.Auth.SeedPassword = v
	}
	if v := os.Getenv("SEED_NAME"); v != "" {
		config.Auth.SeedName = v
	}
	if v := os.Getenv("SMTP_HOST"); v != "" {
		config.Mail.Host = v
	}
	if v := os.Getenv("SMTP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			config.Mail.Port = p
		}
	}
	if v := os.Getenv("SMTP_USER"); v != "" {
		config.Mail.Username = v
	}
	if v := os.Getenv("SMTP_PASS"); v != "" {
		config.Mail.Password = v
	}
	if v := os.Getenv("SMTP_FROM"); v != "" {
		config.Mail.From = v
	}
	if v := os.Getenv("CHROME_PATH"); v != "" {
		config.PDF.ChromePath = v
	}
}

// EnsureDataDir garante que o diretório de dados (e o de exports) exista.
func EnsureDataDir(config *AppConfig) (string, error) {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	dataDir := config.Data.DataDir
	if !filepath.IsAbs(dataDir) {
		dataDir = filepath.Join(exeDir, dataDir)
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Join(dataDir, "exports"), 0755); err != nil {
		return "", err
	}
	return dataDir, nil
}
