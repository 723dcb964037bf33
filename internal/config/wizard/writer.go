package wizard

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/imamik/inithome/internal/config"
)

// WriteConfig writes the config to a YAML file with a descriptive header.
func WriteConfig(cfg *config.Config, outputPath string) error {
	yamlBytes, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(generateHeader(outputPath))
	sb.WriteString("\n")
	sb.Write(yamlBytes)

	if err := os.WriteFile(outputPath, []byte(sb.String()), 0o600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// generateHeader creates the YAML file header comment.
func generateHeader(outputPath string) string {
	var sb strings.Builder
	sb.WriteString("# inithome configuration\n")
	sb.WriteString(fmt.Sprintf("# Generated by `inithome init` on %s\n", time.Now().Format("2006-01-02 15:04:05")))
	sb.WriteString("#\n")
	sb.WriteString("# Every value can be overridden through the environment:\n")
	sb.WriteString("#   INITHOME_HOME_BASE_DIR, INITHOME_HOME_SUBDIRECTORY,\n")
	sb.WriteString("#   INITHOME_OWNER_UID, INITHOME_OWNER_GID, INITHOME_MODE\n")
	sb.WriteString("#\n")
	sb.WriteString(fmt.Sprintf("# Usage: inithome provision -c %s\n", outputPath))
	return sb.String()
}
