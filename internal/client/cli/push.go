package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/distory/internal/client/services"
)

func (a *App) subscribe(ctx context.Context) {
	if a.pushService.Subscribed(ctx) {
		fmt.Println("Already subscribed; refreshing the subscription.")
	}

	if err := a.pushService.Subscribe(ctx); err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println("Subscribed to story notifications.")
}

func (a *App) unsubscribe(ctx context.Context) {
	err := a.pushService.Unsubscribe(ctx)
	if errors.Is(err, services.ErrNotSubscribed) {
		fmt.Println("You are not subscribed.")
		return
	}
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println("Unsubscribed from story notifications.")
}
