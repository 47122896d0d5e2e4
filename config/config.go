package config

import (
	"fmt"
	"os"
	"path"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v2"
)

type SysConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	Workers  int    `yaml:"workers" json:"workers"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type LogConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

type DBConfig struct {
	Type     string `yaml:"type" json:"type"`
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Name     string `yaml:"name" json:"name"`
	User     string `yaml:"user" json:"user"`
	Passwd   string `yaml:"passwd" json:"passwd"`
	MaxConn  int    `yaml:"max_conn" json:"max_conn"`
	IdleConn int    `yaml:"idle_conn" json:"idle_conn"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

// DSN builds the postgres connection string.
func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable TimeZone=Asia/Shanghai",
		c.Host, c.Port, c.User, c.Passwd, c.Name)
}

type AppConfig struct {
	System   SysConfig `yaml:"system" json:"system"`
	Logger   LogConfig `yaml:"logger" json:"logger"`
	Database DBConfig  `yaml:"database" json:"database"`
}

func (c *AppConfig) GetLogDir() string {
	return path.Join(c.System.Workdir, "logs")
}

func (c *AppConfig) GetDataDir() string {
	return path.Join(c.System.Workdir, "data")
}

func (c *AppConfig) initDirs() {
	_ = os.MkdirAll(path.Join(c.System.Workdir, "logs"), 0755)
	_ = os.MkdirAll(path.Join(c.System.Workdir, "data"), 0755)
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "mlregistry",
		Location: "Asia/Shanghai",
		Workdir:  "/var/mlregistry",
		Workers:  16,
		Debug:    true,
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: true,
		Filename:   "/var/mlregistry/mlregistry.log",
	},
	Database: DBConfig{
		Type:     "postgres",
		Host:     "127.0.0.1",
		Port:     5432,
		Name:     "mlregistry_v1",
		User:     "postgres",
		Passwd:   "myroot",
		MaxConn:  100,
		IdleConn: 10,
		Debug:    false,
	},
}

func setEnvValue(name string, val *string) {
	var evalue = os.Getenv(name)
	if evalue != "" {
		*val = evalue
	}
}

func setEnvBoolValue(name string, val *bool) {
	var evalue = os.Getenv(name)
	if evalue != "" {
		*val = evalue == "true" || evalue == "1" || evalue == "on"
	}
}

func setEnvIntValue(name string, val *int) {
	var evalue = os.Getenv(name)
	if evalue != "" {
		*val = cast.ToInt(evalue)
	}
}

// LoadConfig reads the yaml config file when present, falls back to defaults
// and applies MLREGISTRY_* environment overrides last.
func LoadConfig(cfile string) *AppConfig {
	appConfig := DefaultAppConfig
	if cfile != "" && FileExists(cfile) {
		data, err := os.ReadFile(cfile)
		if err != nil {
			panic(err)
		}
		appConfig = new(AppConfig)
		if err := yaml.Unmarshal(data, appConfig); err != nil {
			panic(err)
		}
	}

	setEnvValue("MLREGISTRY_SYSTEM_WORKDIR", &appConfig.System.Workdir)
	setEnvValue("MLREGISTRY_SYSTEM_LOCATION", &appConfig.System.Location)
	setEnvIntValue("MLREGISTRY_SYSTEM_WORKERS", &appConfig.System.Workers)
	setEnvBoolValue("MLREGISTRY_SYSTEM_DEBUG", &appConfig.System.Debug)

	setEnvValue("MLREGISTRY_LOGGER_MODE", &appConfig.Logger.Mode)
	setEnvBoolValue("MLREGISTRY_LOGGER_FILE_ENABLE", &appConfig.Logger.FileEnable)
	setEnvValue("MLREGISTRY_LOGGER_FILENAME", &appConfig.Logger.Filename)

	setEnvValue("MLREGISTRY_DB_HOST", &appConfig.Database.Host)
	setEnvIntValue("MLREGISTRY_DB_PORT", &appConfig.Database.Port)
	setEnvValue("MLREGISTRY_DB_NAME", &appConfig.Database.Name)
	setEnvValue("MLREGISTRY_DB_USER", &appConfig.Database.User)
	setEnvValue("MLREGISTRY_DB_PWD", &appConfig.Database.Passwd)
	setEnvIntValue("MLREGISTRY_DB_MAX_CONN", &appConfig.Database.MaxConn)
	setEnvIntValue("MLREGISTRY_DB_IDLE_CONN", &appConfig.Database.IdleConn)
	setEnvBoolValue("MLREGISTRY_DB_DEBUG", &appConfig.Database.Debug)

	appConfig.initDirs()
	return appConfig
}

func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil || !os.IsNotExist(err)
}
