package cli

import (
	"context"
	"fmt"
	"log"
)

// Get fetches one item and prints its key, version and value.
func (a *App) Get(ctx context.Context, key string) error {
	item, err := a.client.Get(ctx, key)
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}
	if item == nil {
		fmt.Println("(not found)")
		return nil
	}

	fmt.Printf("%s (version %d):\n%s\n", item.Key, item.Version, string(item.Value))
	return nil
}

// Delete removes one item and reports whether it existed.
func (a *App) Delete(ctx context.Context, key string) error {
	existed, err := a.client.Delete(ctx, key)
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	if existed {
		fmt.Println("Deleted")
	} else {
		fmt.Println("(not found)")
	}
	return nil
}
