// Package model contains the general data models and interfaces for the heartbeat.
package model // import "github.com/juicetools/juicebox-heartbeat/pkg/model"

// NotificationField is a single labeled value in a notification. Field
// order is significant and fixed per event category.
type NotificationField struct {
	Label  string
	Value  string
	Inline bool
}

// NewNotification is a convenience function to init a Notification
func NewNotification(title string, targetURL string, fields []NotificationField,
	thumbnailURL string) *Notification {
	return &Notification{
		title:        title,
		targetURL:    targetURL,
		fields:       fields,
		thumbnailURL: thumbnailURL,
	}
}

// Notification is the payload delivered to each destination. Immutable
// once built.
type Notification struct {
	title        string
	targetURL    string
	fields       []NotificationField
	thumbnailURL string
}

// Title returns the notification title
func (n *Notification) Title() string {
	return n.title
}

// TargetURL returns the URL the notification links to
func (n *Notification) TargetURL() string {
	return n.targetURL
}

// Fields returns the ordered notification fields
func (n *Notification) Fields() []NotificationField {
	return n.fields
}

// ThumbnailURL returns the thumbnail URL, empty when the project
// has no logo
func (n *Notification) ThumbnailURL() string {
	return n.thumbnailURL
}
