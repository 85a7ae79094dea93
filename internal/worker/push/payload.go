// Package push parses push message payloads and dispatches notifications,
// including deep-link routing when the user activates one.
package push

import (
	"encoding/json"
	"strings"
)

// NotificationTag is constant across every notification so a second push
// replaces the first instead of stacking.
const NotificationTag = "distory-notification"

// ActionView is the notification action that jumps to the story listing.
const ActionView = "view"

// Action is one button on a notification.
type Action struct {
	Action string `json:"action"`
	Title  string `json:"title"`
	Icon   string `json:"icon,omitempty"`
}

// Options carries the displayable fields of a notification.
type Options struct {
	Body               string   `json:"body,omitempty"`
	Icon               string   `json:"icon,omitempty"`
	Badge              string   `json:"badge,omitempty"`
	Tag                string   `json:"tag,omitempty"`
	RequireInteraction bool     `json:"requireInteraction"`
	Data               Data     `json:"data,omitempty"`
	Actions            []Action `json:"actions,omitempty"`
}

// Data is the custom payload attached to a notification; URL is the
// deep-link target used on click.
type Data struct {
	URL string `json:"url,omitempty"`
}

// Payload is a parsed push message: a title plus display options.
type Payload struct {
	Title   string  `json:"title"`
	Options Options `json:"options"`
}

// DefaultPayload is shown whenever a push arrives with no payload or one
// that fails to parse.
func DefaultPayload(iconURL string) Payload {
	return Payload{
		Title: "Distory Notification",
		Options: Options{
			Body:  "You have a new notification",
			Icon:  iconURL,
			Badge: iconURL,
			Tag:   NotificationTag,
			Actions: []Action{
				{Action: ActionView, Title: "View Stories", Icon: iconURL},
				{Action: "dismiss", Title: "Dismiss"},
			},
		},
	}
}

// Parse merges a raw push payload over def. The payload overrides the
// default field by field, never the reverse; malformed JSON or an empty
// message yields def unchanged. The tag always stays constant so
// notifications replace rather than stack.
func Parse(raw []byte, def Payload) Payload {
	out := def

	if len(strings.TrimSpace(string(raw))) == 0 {
		return out
	}

	var in Payload
	if err := json.Unmarshal(raw, &in); err != nil {
		return out
	}

	if in.Title != "" {
		out.Title = in.Title
	}
	if in.Options.Body != "" {
		out.Options.Body = in.Options.Body
	}
	if in.Options.Icon != "" {
		out.Options.Icon = in.Options.Icon
	}
	if in.Options.Badge != "" {
		out.Options.Badge = in.Options.Badge
	}
	if in.Options.Data.URL != "" {
		out.Options.Data.URL = in.Options.Data.URL
	}
	if len(in.Options.Actions) > 0 {
		out.Options.Actions = in.Options.Actions
	}
	out.Options.RequireInteraction = in.Options.RequireInteraction

	out.Options.Tag = NotificationTag
	return out
}
