package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/dmitrijs2005/vssclient/pkg/vss"
)

// Store reads a value interactively and writes it under key, printing the
// server-assigned version.
func (a *App) Store(ctx context.Context, key string) error {
	value, err := GetMultiline(a.reader, "Enter value:", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	item, err := a.client.Store(ctx, key, []byte(value))
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	fmt.Printf("Stored %s (version %d)\n", item.Key, item.Version)
	return nil
}

// Batch reads "key=value" lines interactively and writes them as one atomic
// batch. Malformed lines are reported and skipped before submission.
func (a *App) Batch(ctx context.Context) error {
	lines, err := GetKeyValueLines(a.reader, os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	items := make([]vss.KeyValue, 0, len(lines))
	for _, line := range lines {
		k, v, ok := strings.Cut(line, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			log.Printf("skipping malformed line: %q", line)
			continue
		}
		items = append(items, vss.KeyValue{Key: k, Value: []byte(v)})
	}
	if len(items) == 0 {
		fmt.Println("Nothing to store")
		return nil
	}

	stored, err := a.client.PutWithKeyPrefix(ctx, items)
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	for _, item := range stored {
		fmt.Printf("%s -> version %d\n", item.Key, item.Version)
	}
	return nil
}
