package config

import (
	"fmt"
	"os"
	"strings"
)

const (
	KindServer = "server"
	KindCLI    = "cli"
)

func Template(kind string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case KindServer:
		return serverTemplate, nil
	case KindCLI:
		return cliTemplate, nil
	default:
		return "", fmt.Errorf("unknown config kind: %s", kind)
	}
}

func WriteTemplate(path, kind string, overwrite bool) error {
	template, err := Template(kind)
	if err != nil {
		return err
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(template), 0o600)
}

const serverTemplate = `name = "huffd"
addr = ":9300"
cors_origins = ["http://localhost:3000"]
max_body_bytes = 67108864
buffer_size = 65536
# auth_token = "change-me"
`

const cliTemplate = `buffer_size = 65536
stats = "text"
overwrite = false
`
