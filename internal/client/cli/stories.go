package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/distory/internal/client/models"
	"github.com/dmitrijs2005/distory/internal/filex"
)

func (a *App) printStoryLine(s models.Story) {
	marker := " "
	if a.storyService.IsBookmarked(context.Background(), s.ID) {
		marker = "*"
	}
	fmt.Printf("%s %-24s %-16s %s\n", marker, s.ID, s.Name, firstLine(s.Description))
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if len(s) > 60 {
		s = s[:57] + "..."
	}
	return s
}

func (a *App) list(ctx context.Context) {
	stories, fromCache, err := a.storyService.List(ctx, 1, a.config.PageSize, false)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	if fromCache {
		fmt.Println("(offline, showing cached stories)")
	}
	if len(stories) == 0 {
		fmt.Println("No stories yet.")
		return
	}
	for _, s := range stories {
		a.printStoryLine(s)
	}
}

func (a *App) show(ctx context.Context, id string) {
	story, fromCache, err := a.storyService.Get(ctx, id)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	if fromCache {
		fmt.Println("(offline, showing cached copy)")
	}
	fmt.Println("ID:         ", story.ID)
	fmt.Println("Author:     ", story.Name)
	fmt.Println("Created:    ", story.CreatedAt.Format("2006-01-02 15:04"))
	if story.PhotoURL != "" {
		fmt.Println("Photo:      ", story.PhotoURL)
	}
	if story.Lat != nil && story.Lon != nil {
		fmt.Printf("Location:    %f, %f\n", *story.Lat, *story.Lon)
	}
	fmt.Println("Description:")
	fmt.Println(story.Description)
}

func (a *App) add(ctx context.Context) {
	description, err := GetMultiline(a.reader, "Enter story description", os.Stdout)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	if description == "" {
		fmt.Println("Description cannot be empty.")
		return
	}

	photoPath, err := GetSimpleText(a.reader, "Enter photo file path", os.Stdout)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	photo, err := filex.ReadPhoto(photoPath)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	story := models.Story{Description: description, Photo: photo}

	loc, err := GetSimpleText(a.reader, "Enter location as 'lat,lon' (optional, Enter to skip)", os.Stdout)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	if loc != "" {
		lat, lon, err := parseLatLon(loc)
		if err != nil {
			fmt.Println("Error:", err)
			return
		}
		story.Lat, story.Lon = &lat, &lon
	}

	saved, offline, err := a.storyService.Add(ctx, story)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	if offline {
		fmt.Printf("You are offline. Story saved locally (%s) and will be uploaded automatically.\n", saved.ID)
		return
	}
	fmt.Println("Story published.")
}

func parseLatLon(s string) (float64, float64, error) {
	parts := strings.SplitN(s, ",", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected 'lat,lon', got %q", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid latitude: %w", err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid longitude: %w", err)
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return 0, 0, fmt.Errorf("coordinates out of range: %f, %f", lat, lon)
	}
	return lat, lon, nil
}
