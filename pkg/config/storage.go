package config

import (
	"fmt"
	"log"
	"strings"
)

const defaultStoragePath = "Data/products.json"

// StorageConfig locates the product file.
type StorageConfig struct {
	Path string `koanf:"path"`
}

// String returns a string representation of the storage configuration.
func (c *StorageConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Storage ---\n")
	b.WriteString(fmt.Sprintf("  path: %s\n", c.Path))
	return b.String()
}

func (c *StorageConfig) Validate() error {
	if strings.TrimSpace(c.Path) == "" {
		log.Println("Using default value for storage path")
		c.Path = defaultStoragePath
	}
	if strings.HasSuffix(c.Path, "/") {
		return fmt.Errorf("storage path must point to a file: %s", c.Path)
	}
	return nil
}
