package cli

import (
	"context"
	"fmt"
)

func (a *App) listOffline(ctx context.Context) {
	list, err := a.storyService.PendingCount(ctx)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	if list == 0 {
		fmt.Println("No stories waiting for upload.")
		return
	}

	pending, err := a.store.GetOfflineStories(ctx)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Printf("%d story(ies) waiting for upload:\n", len(pending))
	for _, p := range pending {
		fmt.Printf("  %-24s created %s  %s\n", p.ID, p.CreatedAt.Format("2006-01-02 15:04"), firstLine(p.Description))
	}
}

func (a *App) sync(ctx context.Context) {
	report, err := a.syncService.SyncPending(ctx)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	switch {
	case report.Synced == 0 && report.Failed == 0:
		fmt.Println("Nothing to sync.")
	case report.Failed == 0:
		fmt.Printf("Uploaded %d story(ies).\n", report.Synced)
	default:
		fmt.Printf("Uploaded %d story(ies), %d failed and will be retried.\n", report.Synced, report.Failed)
	}
}
