package cli

import (
	"context"
	"fmt"
)

func (a *App) listBookmarks(ctx context.Context) {
	bookmarks, err := a.storyService.Bookmarks(ctx)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	if len(bookmarks) == 0 {
		fmt.Println("No bookmarks yet.")
		return
	}
	for _, b := range bookmarks {
		fmt.Printf("* %-24s %-16s saved %s\n", b.ID, b.Name, b.BookmarkedAt.Format("2006-01-02 15:04"))
	}
}

// toggleBookmark flips the bookmark state of a story. The story must be
// resolvable (from the API or the local cache) so the bookmark can carry
// a full copy of it.
func (a *App) toggleBookmark(ctx context.Context, id string) {
	story, _, err := a.storyService.Get(ctx, id)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	bookmarked, err := a.storyService.ToggleBookmark(ctx, *story)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	if bookmarked {
		fmt.Println("Bookmarked.")
	} else {
		fmt.Println("Bookmark removed.")
	}
}
