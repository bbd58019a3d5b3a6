package cli

import (
	"context"
	"fmt"
	"log"
)

// List prints every item under prefix with its version and value size.
func (a *App) List(ctx context.Context, prefix string) error {
	items, err := a.client.List(ctx, prefix)
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	for _, item := range items {
		fmt.Printf("%s\tv%d\t%d byte(s)\n", item.Key, item.Version, len(item.Value))
	}
	fmt.Printf("%d item(s)\n", len(items))
	return nil
}

// Keys prints key versions under prefix, without fetching values.
func (a *App) Keys(ctx context.Context, prefix string) error {
	keys, err := a.client.ListKeys(ctx, prefix)
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	for _, kv := range keys {
		fmt.Printf("%s\tv%d\n", kv.Key, kv.Version)
	}
	fmt.Printf("%d key(s)\n", len(keys))
	return nil
}
