package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/vssclient/internal/filex"
)

// exportDirName is the subdirectory (under the working directory) that
// Export writes into.
const exportDirName = "export"

// Export fetches every item under prefix and writes each value to a file
// named after its key (sanitized) in the export subdirectory.
func (a *App) Export(ctx context.Context, prefix string) error {
	items, err := a.client.List(ctx, prefix)
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}
	if len(items) == 0 {
		fmt.Println("Nothing to export")
		return nil
	}

	dir, err := filex.EnsureSubdDir(exportDirName)
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	for _, item := range items {
		path := filepath.Join(dir, filex.SafeFileName(item.Key))
		if err := os.WriteFile(path, item.Value, 0o600); err != nil {
			log.Printf("Error writing %s: %s", path, err.Error())
			return err
		}
	}

	fmt.Printf("Exported %d item(s) to %s\n", len(items), dir)
	return nil
}
