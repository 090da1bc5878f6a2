// Package config exposes process configuration for the portfolio server.
// Values come from environment variables first, then from an optional TOML
// file, then from built-in defaults.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"
)

//go:embed version
var version string

//go:embed name
var name string

type LogLevel string

const (
	Debug  LogLevel = "debug"
	Info   LogLevel = "info"
	Notice LogLevel = "notice"
	Warn   LogLevel = "warn"
	Error  LogLevel = "error"
)

// StorageKind selects the active upload mediation strategy. Exactly one
// strategy is active per deployment.
type StorageKind string

const (
	StorageLocal StorageKind = "local"
	StorageBlob  StorageKind = "blob"
)

// fileConfig mirrors the optional portfolio.toml override file.
type fileConfig struct {
	Listen       string `toml:"listen"`
	Port         int    `toml:"port"`
	DBFolder     string `toml:"dbFolder"`
	LogFolder    string `toml:"logFolder"`
	UploadDir    string `toml:"uploadDir"`
	Storage      string `toml:"storage"`
	BlobEndpoint string `toml:"blobEndpoint"`
	BlobFolder   string `toml:"blobFolder"`
}

var (
	fileConfOnce sync.Once
	fileConf     fileConfig
)

// loadFileConf parses the TOML override file once. A missing file is not an
// error; a malformed one is reported on stderr and ignored.
func loadFileConf() fileConfig {
	fileConfOnce.Do(func() {
		path := os.Getenv("PORTFOLIO_CONFIG")
		if path == "" {
			path = "portfolio.toml"
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return
		}
		if err := toml.Unmarshal(data, &fileConf); err != nil {
			fmt.Fprintf(os.Stderr, "ignoring malformed config file %s: %v\n", path, err)
			fileConf = fileConfig{}
		}
	})
	return fileConf
}

func lookup(env, fileVal, def string) string {
	if v := os.Getenv(env); v != "" {
		return v
	}
	if fileVal != "" {
		return fileVal
	}
	return def
}

func GetVersion() string {
	return strings.TrimSpace(version)
}

func GetName() string {
	return strings.TrimSpace(name)
}

func IsDebug() bool {
	return os.Getenv("PORTFOLIO_DEBUG") == "true"
}

func GetLogLevel() LogLevel {
	if IsDebug() {
		return Debug
	}
	logLevel := os.Getenv("PORTFOLIO_LOG_LEVEL")
	if logLevel == "" {
		return Info
	}
	return LogLevel(logLevel)
}

func GetLogFolder() string {
	return lookup("PORTFOLIO_LOG_FOLDER", loadFileConf().LogFolder, "log")
}

func GetDBFolderPath() string {
	return lookup("PORTFOLIO_DB_FOLDER", loadFileConf().DBFolder, "data")
}

func GetDBPath() string {
	return fmt.Sprintf("%s/%s.db", GetDBFolderPath(), GetName())
}

func GetListen() string {
	return lookup("PORTFOLIO_LISTEN", loadFileConf().Listen, "")
}

// GetPort honors the plain PORT variable as well so the server drops into
// environments that already set it.
func GetPort() int {
	if v := os.Getenv("PORTFOLIO_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			return port
		}
	}
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			return port
		}
	}
	if fc := loadFileConf(); fc.Port > 0 {
		return fc.Port
	}
	return 3000
}

func GetSessionSecret() string {
	return os.Getenv("PORTFOLIO_SESSION_SECRET")
}

func GetStorageKind() StorageKind {
	kind := lookup("PORTFOLIO_STORAGE", loadFileConf().Storage, string(StorageLocal))
	if StorageKind(kind) == StorageBlob {
		return StorageBlob
	}
	return StorageLocal
}

func GetUploadDir() string {
	return lookup("PORTFOLIO_UPLOAD_DIR", loadFileConf().UploadDir, "public/uploads")
}

// GetUploadPublicPath is the root-relative path uploaded images are served
// under when the local storage strategy is active.
func GetUploadPublicPath() string {
	return "/uploads"
}

func GetBlobEndpoint() string {
	return lookup("PORTFOLIO_BLOB_ENDPOINT", loadFileConf().BlobEndpoint, "")
}

func GetBlobKey() string {
	return os.Getenv("PORTFOLIO_BLOB_KEY")
}

func GetBlobFolder() string {
	return lookup("PORTFOLIO_BLOB_FOLDER", loadFileConf().BlobFolder, "portfolio")
}
