// Package templates embeds files that fleur writes to disk.
package templates

import (
	"embed"
	"fmt"

	"github.com/fleuristes/fleur/internal/messages"
)

//go:embed config.toml npx-fleur.sh
var files embed.FS

// Read returns the embedded template content for name.
func Read(name string) ([]byte, error) {
	data, err := files.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf(messages.TemplatesReadFailedFmt, name, err)
	}
	return data, nil
}
