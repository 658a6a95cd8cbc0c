package services

import (
	"log"
	"os"
	"strings"
)

// LoadEnvVariables loads a .env file into the process environment when one
// exists (local dev). Values already set in the environment are overwritten,
// matching dotenv semantics for this project.
func LoadEnvVariables() {
	log.Println("Loading environment variables...")

	envPaths := []string{".env", "../.env"}

	for _, path := range envPaths {
		if _, err := os.Stat(path); err != nil {
			continue
		}

		content, err := os.ReadFile(path)
		if err != nil {
			log.Printf("Error reading .env file at %s: %v", path, err)
			continue
		}

		log.Printf("Found .env file at %s", path)
		for _, line := range strings.Split(string(content), "\n") {
			if strings.HasPrefix(line, "#") || strings.TrimSpace(line) == "" {
				continue
			}
			parts := strings.SplitN(line, "=", 2)
			if len(parts) == 2 {
				key := strings.TrimSpace(parts[0])
				value := strings.TrimSpace(parts[1])
				os.Setenv(key, value)
			}
		}
		return
	}
}
